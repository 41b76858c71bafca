package item

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/shop"
)

// ShopDirectory resolves the shop an item is listed under.
type ShopDirectory interface {
	GetByID(ctx context.Context, id string) (*shop.Shop, error)
}

type CreateRequest struct {
	OwnerID         string
	ShopID          *string
	Title           string
	Description     string
	PricePerDay     int64
	SecurityDeposit int64
	Gender          string
	Sizes           []string
	City            string
	Pincode         string
	CategoryIDs     []string
}

// UpdateRequest holds the mutable fields. Nil means unchanged.
type UpdateRequest struct {
	Title           *string
	Description     *string
	PricePerDay     *int64
	SecurityDeposit *int64
	IsAvailable     *bool
	CategoryIDs     *[]string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, int, error)
	Update(ctx context.Context, id string, actor *auth.Session, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id string, actor *auth.Session) error
}

type service struct {
	repo  Repository
	shops ShopDirectory
}

func NewService(repo Repository, shops ShopDirectory) Service {
	return &service{repo: repo, shops: shops}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if req.PricePerDay < 0 {
		return nil, ErrInvalidPrice
	}
	if req.SecurityDeposit < 0 {
		return nil, ErrInvalidDeposit
	}
	if !slices.Contains(ValidGenders, req.Gender) {
		return nil, ErrInvalidGender
	}

	it := &Item{
		OwnerID:         req.OwnerID,
		ShopID:          req.ShopID,
		Title:           title,
		Description:     strings.TrimSpace(req.Description),
		PricePerDay:     req.PricePerDay,
		SecurityDeposit: req.SecurityDeposit,
		Gender:          req.Gender,
		Sizes:           req.Sizes,
		City:            strings.TrimSpace(req.City),
		Pincode:         strings.TrimSpace(req.Pincode),
		Categories:      categoryRefs(req.CategoryIDs),
		IsAvailable:     true,
	}
	if it.Sizes == nil {
		it.Sizes = []string{}
	}

	// Shop listings take their location from the shop.
	if req.ShopID != nil {
		sh, err := s.shops.GetByID(ctx, *req.ShopID)
		if err != nil {
			if errors.Is(err, shop.ErrNotFound) {
				return nil, ErrShopNotFound
			}
			return nil, err
		}
		if sh.OwnerID != req.OwnerID {
			return nil, ErrShopForbidden
		}
		if !sh.IsActive {
			return nil, ErrShopInactive
		}
		it.City = sh.City
		it.Pincode = sh.Pincode
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, it.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Item, int, error) {
	switch filter.SortBy {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
	default:
		filter.SortBy = SortNewest
	}
	return s.repo.List(ctx, filter)
}

// Update changes listing details. Existing rents keep the price and deposit
// they were created with.
func (s *service) Update(ctx context.Context, id string, actor *auth.Session, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == nil || (it.OwnerID != actor.UserID && !actor.IsAdmin()) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		it.Title = title
	}
	if req.Description != nil {
		it.Description = strings.TrimSpace(*req.Description)
	}
	if req.PricePerDay != nil {
		if *req.PricePerDay < 0 {
			return nil, ErrInvalidPrice
		}
		it.PricePerDay = *req.PricePerDay
	}
	if req.SecurityDeposit != nil {
		if *req.SecurityDeposit < 0 {
			return nil, ErrInvalidDeposit
		}
		it.SecurityDeposit = *req.SecurityDeposit
	}
	if req.IsAvailable != nil {
		it.IsAvailable = *req.IsAvailable
	}
	if req.CategoryIDs != nil {
		it.Categories = categoryRefs(*req.CategoryIDs)
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, it.ID)
}

// Delete removes a listing. Items with rental history cannot be deleted and
// should be marked unavailable instead.
func (s *service) Delete(ctx context.Context, id string, actor *auth.Session) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor == nil || (it.OwnerID != actor.UserID && !actor.IsAdmin()) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

func categoryRefs(ids []string) []CategoryRef {
	refs := make([]CategoryRef, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, CategoryRef{ID: id})
	}
	return refs
}
