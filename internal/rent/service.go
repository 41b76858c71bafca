package rent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/metrics"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

// ItemCatalog is the slice of the catalog a booking needs.
type ItemCatalog interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type CreateRequest struct {
	ItemID    string
	RenterID  string
	StartDate string
	EndDate   string
	Notes     string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Rent, error)
	UpdateStatus(ctx context.Context, id string, actor *auth.Session, to Status) (*Rent, error)
	ListForRenter(ctx context.Context, renterID string, page, pageSize int) ([]*Rent, int, error)
	ListForOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*Rent, int, error)
	Get(ctx context.Context, id string, actor *auth.Session) (*Rent, error)
}

type service struct {
	repo  Repository
	items ItemCatalog
}

func NewService(repo Repository, items ItemCatalog) Service {
	return &service{
		repo:  repo,
		items: items,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Rent, error) {
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("load item failed: %w", err)
	}
	if !it.IsAvailable {
		return nil, ErrItemUnavailable
	}

	period, err := ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	quote, err := NewQuote(period, it.PricePerDay, it.SecurityDeposit)
	if err != nil {
		return nil, err
	}

	r := &Rent{
		ItemID:          it.ID,
		RenterID:        req.RenterID,
		OwnerID:         it.OwnerID,
		StartDate:       period.Start,
		EndDate:         period.End,
		Status:          StatusPending,
		TotalAmount:     quote.TotalAmount,
		SecurityDeposit: quote.SecurityDeposit,
		Notes:           strings.TrimSpace(req.Notes),
	}

	if err := s.repo.CreateIfNoConflict(ctx, r); err != nil {
		if errors.Is(err, ErrBookingConflict) {
			metrics.IncRentConflict("create")
			zerolog.Ctx(ctx).Info().
				Str("item_id", r.ItemID).
				Time("start", r.StartDate).
				Time("end", r.EndDate).
				Msg("booking conflict")
		}
		return nil, err
	}
	metrics.IncRentCreated()

	zerolog.Ctx(ctx).Info().
		Str("rent_id", r.ID).
		Str("item_id", r.ItemID).
		Int64("days", quote.Days).
		Int64("total_amount", r.TotalAmount).
		Msg("rent created")

	// reload for the display fields
	full, err := s.repo.GetByID(ctx, r.ID)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("rent_id", r.ID).Msg("reload created rent failed")
		return r, nil
	}
	return full, nil
}

// UpdateStatus moves a rent along its lifecycle on behalf of actor.
// Checks run in order: status value, existence, actor, lifecycle edge.
// Requesting the current status is a no-op.
func (s *service) UpdateStatus(ctx context.Context, id string, actor *auth.Session, to Status) (*Rent, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeTransition(r, actor, to); err != nil {
		return nil, err
	}

	if r.Status == to {
		return r, nil
	}

	from := r.Status
	if from.Terminal() {
		return nil, apperror.Wrap(ErrInvalidTransition, ErrInvalidTransition.Code,
			fmt.Sprintf("Rental is already %s", from))
	}
	if !CanTransition(from, to) {
		return nil, apperror.Wrap(ErrInvalidTransition, ErrInvalidTransition.Code,
			fmt.Sprintf("Cannot change rental from %s to %s", from, to))
	}

	if err := s.repo.UpdateStatus(ctx, r, to); err != nil {
		if errors.Is(err, ErrBookingConflict) {
			metrics.IncRentConflict("transition")
		}
		return nil, err
	}
	metrics.IncRentTransition(string(from), string(to))

	zerolog.Ctx(ctx).Info().
		Str("rent_id", r.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("actor_id", actor.UserID).
		Msg("rent status changed")

	return r, nil
}

func authorizeTransition(r *Rent, actor *auth.Session, to Status) error {
	if actor == nil {
		return ErrForbidden
	}
	switch RequiredActor(to) {
	case ActorOwner:
		if actor.UserID != r.OwnerID {
			return ErrOwnerOnly
		}
	case ActorRenter:
		if actor.UserID != r.RenterID {
			return ErrRenterOnly
		}
	default:
		return ErrForbidden
	}
	return nil
}

func (s *service) ListForRenter(ctx context.Context, renterID string, page, pageSize int) ([]*Rent, int, error) {
	return s.repo.List(ctx, Filter{RenterID: renterID, Page: page, PageSize: pageSize})
}

func (s *service) ListForOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*Rent, int, error) {
	return s.repo.List(ctx, Filter{OwnerID: ownerID, Page: page, PageSize: pageSize})
}

// Get returns the rent to its renter, its owner or an admin.
func (s *service) Get(ctx context.Context, id string, actor *auth.Session) (*Rent, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrForbidden
	}
	if actor.UserID != r.RenterID && actor.UserID != r.OwnerID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return r, nil
}
