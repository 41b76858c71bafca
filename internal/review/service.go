package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/metrics"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/rent"
)

// RentReader loads the rent being reviewed.
type RentReader interface {
	GetByID(ctx context.Context, id string) (*rent.Rent, error)
}

type CreateRequest struct {
	ReviewerID  string
	RentID      string
	RatingItem  int
	RatingOwner int
	Comment     string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	ListByItem(ctx context.Context, itemID string) ([]*Review, error)
}

type service struct {
	repo  Repository
	rents RentReader
}

func NewService(repo Repository, rents RentReader) Service {
	return &service{repo: repo, rents: rents}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if !validRating(req.RatingItem) || !validRating(req.RatingOwner) {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	r, err := s.rents.GetByID(ctx, req.RentID)
	if err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			return nil, ErrRentNotFound
		}
		return nil, fmt.Errorf("load rent failed: %w", err)
	}
	if r.RenterID != req.ReviewerID {
		return nil, ErrNotRenter
	}
	if r.Status != rent.StatusCompleted {
		return nil, ErrRentNotCompleted
	}

	rv := &Review{
		ReviewerID:  req.ReviewerID,
		ItemID:      r.ItemID,
		OwnerID:     r.OwnerID,
		RentID:      r.ID,
		RatingItem:  req.RatingItem,
		RatingOwner: req.RatingOwner,
		Comment:     comment,
	}

	// The unique (reviewer, rent) constraint decides races; see ErrAlreadyReviewed.
	if err := s.repo.CreateAndRefreshRating(ctx, rv); err != nil {
		return nil, err
	}
	metrics.IncReviewCreated()

	zerolog.Ctx(ctx).Info().
		Str("review_id", rv.ID).
		Str("rent_id", rv.RentID).
		Str("item_id", rv.ItemID).
		Int("rating_item", rv.RatingItem).
		Msg("review created")

	return rv, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Review, error) {
	return s.repo.ListByItem(ctx, itemID)
}

func validRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}
