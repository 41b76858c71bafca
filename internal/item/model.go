package item

import (
	"net/http"
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "Item not found")
	ErrForbidden      = apperror.New(http.StatusForbidden, "Not authorized")
	ErrEmptyTitle     = apperror.New(http.StatusBadRequest, "Title cannot be empty")
	ErrInvalidPrice   = apperror.New(http.StatusBadRequest, "Price per day must not be negative")
	ErrInvalidDeposit = apperror.New(http.StatusBadRequest, "Security deposit must not be negative")
	ErrInvalidGender  = apperror.New(http.StatusBadRequest, "Gender must be one of Men, Women, Unisex, Kids")

	ErrShopNotFound    = apperror.New(http.StatusNotFound, "Shop not found")
	ErrShopForbidden   = apperror.New(http.StatusForbidden, "Not authorized to list items for this shop")
	ErrShopInactive    = apperror.New(http.StatusBadRequest, "Shop is not active")
	ErrUnknownCategory = apperror.New(http.StatusBadRequest, "Unknown category")
	ErrHasRentals      = apperror.New(http.StatusBadRequest, "Item has rental history; mark it unavailable instead")
)

// ValidGenders lists the catalog's gender categories.
var ValidGenders = []string{"Men", "Women", "Unisex", "Kids"}

// Sort orders accepted by List.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// Item is a rentable article of clothing or accessory. Money is in whole rupees.
type Item struct {
	ID              string
	OwnerID         string
	OwnerName       string
	ShopID          *string
	ShopName        string
	Categories      []CategoryRef
	Title           string
	Description     string
	PricePerDay     int64
	SecurityDeposit int64
	Gender          string
	Sizes           []string
	City            string
	Pincode         string
	IsAvailable     bool
	Rating          float64
	TotalReviews    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CategoryRef names one category an item is listed under.
type CategoryRef struct {
	ID   string
	Name string
}

// CategoryIDs returns the IDs of the item's categories.
func (it *Item) CategoryIDs() []string {
	ids := make([]string, len(it.Categories))
	for i, c := range it.Categories {
		ids[i] = c.ID
	}
	return ids
}

// Filter defines parameters for listing items.
type Filter struct {
	OwnerID    string
	ShopID     string
	CategoryID string
	City       string
	Pincode    string
	Gender     string
	Size       string
	Search     string
	MinPrice   *int64
	MaxPrice   *int64
	// IncludeUnavailable also returns items the owner has taken off the market.
	IncludeUnavailable bool
	SortBy             string
	Page               int
	PageSize           int
}
