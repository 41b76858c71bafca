package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
)

type CreateRequest struct {
	Name        string
	Address     string
	City        string
	Pincode     string
	Phone       string
	Description string
}

// UpdateRequest holds the mutable fields. Nil means unchanged.
type UpdateRequest struct {
	Name        *string
	Address     *string
	City        *string
	Pincode     *string
	Phone       *string
	Description *string
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Shop, error)
	GetByID(ctx context.Context, id string) (*Shop, error)
	GetByOwner(ctx context.Context, ownerID string) (*Shop, error)
	List(ctx context.Context, filter Filter) ([]*Shop, int, error)
	Update(ctx context.Context, id string, actor *auth.Session, req UpdateRequest) (*Shop, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Shop, error) {
	sh := &Shop{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Pincode:     strings.TrimSpace(req.Pincode),
		Phone:       strings.TrimSpace(req.Phone),
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if err := validate(sh); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, sh.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Shop, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByOwner returns the caller's shop, or ErrNoShop if they have none.
func (s *service) GetByOwner(ctx context.Context, ownerID string) (*Shop, error) {
	sh, err := s.repo.GetByOwner(ctx, ownerID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoShop
	}
	return sh, err
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Shop, int, error) {
	return s.repo.List(ctx, filter)
}

// Update changes shop details. Only the owner or an admin may do so.
func (s *service) Update(ctx context.Context, id string, actor *auth.Session, req UpdateRequest) (*Shop, error) {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == nil || (sh.OwnerID != actor.UserID && !actor.IsAdmin()) {
		return nil, ErrForbidden
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&sh.Name, req.Name)
	set(&sh.Address, req.Address)
	set(&sh.City, req.City)
	set(&sh.Pincode, req.Pincode)
	set(&sh.Phone, req.Phone)
	set(&sh.Description, req.Description)
	if req.IsActive != nil {
		sh.IsActive = *req.IsActive
	}
	if err := validate(sh); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func validate(sh *Shop) error {
	switch {
	case sh.Name == "":
		return ErrNameRequired
	case sh.Address == "":
		return ErrAddressRequired
	case sh.City == "":
		return ErrCityRequired
	case sh.Pincode == "":
		return ErrPincodeRequired
	}
	return nil
}
