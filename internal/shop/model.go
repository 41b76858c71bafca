package shop

import (
	"net/http"
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "Shop not found")
	ErrNoShop          = apperror.New(http.StatusNotFound, "No shop found")
	ErrForbidden       = apperror.New(http.StatusForbidden, "Not authorized")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "Shop name is required")
	ErrAddressRequired = apperror.New(http.StatusBadRequest, "Shop address is required")
	ErrCityRequired    = apperror.New(http.StatusBadRequest, "Shop city is required")
	ErrPincodeRequired = apperror.New(http.StatusBadRequest, "Shop pincode is required")
	ErrAlreadyHasShop  = apperror.New(http.StatusConflict, "You already have a shop")
)

// Shop is a storefront run by a shop owner. Each owner has at most one.
type Shop struct {
	ID           string
	OwnerID      string
	OwnerName    string
	OwnerEmail   string
	Name         string
	Address      string
	City         string
	Pincode      string
	Phone        string
	Description  string
	IsActive     bool
	Rating       float64
	TotalReviews int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing shops.
type Filter struct {
	City    string
	Pincode string
	Search  string
	// IncludeInactive also returns shops that have been switched off.
	IncludeInactive bool
	Page            int
	PageSize        int
}
