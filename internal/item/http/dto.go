package http

import (
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/request"
)

type ItemResponse struct {
	ID              string        `json:"id"`
	OwnerID         string        `json:"ownerId"`
	OwnerName       string        `json:"ownerName"`
	ShopID          *string       `json:"shopId"`
	ShopName        string        `json:"shopName,omitempty"`
	Categories      []CategoryTag `json:"categories"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	PricePerDay     int64         `json:"pricePerDay"`
	SecurityDeposit int64         `json:"securityDeposit"`
	Gender          string        `json:"gender"`
	Sizes           []string      `json:"size"`
	City            string        `json:"city"`
	Pincode         string        `json:"pincode"`
	IsAvailable     bool          `json:"isAvailable"`
	Rating          float64       `json:"rating"`
	TotalReviews    int           `json:"totalReviews"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// CategoryTag is the short form of a category embedded in an item.
type CategoryTag struct {
	ID   string `json:"id"`
	Name string `json:"category_name"`
}

func NewResponse(it *item.Item) ItemResponse {
	sizes := it.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	categories := make([]CategoryTag, len(it.Categories))
	for i, c := range it.Categories {
		categories[i] = CategoryTag{ID: c.ID, Name: c.Name}
	}
	return ItemResponse{
		ID:              it.ID,
		OwnerID:         it.OwnerID,
		OwnerName:       it.OwnerName,
		ShopID:          it.ShopID,
		ShopName:        it.ShopName,
		Categories:      categories,
		Title:           it.Title,
		Description:     it.Description,
		PricePerDay:     it.PricePerDay,
		SecurityDeposit: it.SecurityDeposit,
		Gender:          it.Gender,
		Sizes:           sizes,
		City:            it.City,
		Pincode:         it.Pincode,
		IsAvailable:     it.IsAvailable,
		Rating:          it.Rating,
		TotalReviews:    it.TotalReviews,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}

// ItemEnvelope wraps a single item the way the web client expects.
type ItemEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Item    ItemResponse `json:"item"`
}

type ListItemsRequest struct {
	request.ListParams
	City     string `form:"city"`
	Pincode  string `form:"pincode"`
	Gender   string `form:"gender" binding:"omitempty,oneof=Men Women Unisex Kids"`
	Size     string `form:"size"`
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,uuid"`
	MinPrice *int64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice *int64 `form:"maxPrice" binding:"omitempty,min=0"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=newest createdAt price_asc price_desc rating"`
}

type CreateRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	PricePerDay     int64    `json:"price_per_day" binding:"min=0"`
	SecurityDeposit int64    `json:"security_deposit" binding:"min=0"`
	Gender          string   `json:"gender" binding:"required,oneof=Men Women Unisex Kids"`
	Sizes           []string `json:"size"`
	ShopID          *string  `json:"shop_id" binding:"omitempty,uuid"`
	Categories      []string `json:"categories" binding:"omitempty,dive,uuid"`
	City            string   `json:"city"`
	Pincode         string   `json:"pincode"`
}

type UpdateRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	PricePerDay     *int64    `json:"price_per_day" binding:"omitempty,min=0"`
	SecurityDeposit *int64    `json:"security_deposit" binding:"omitempty,min=0"`
	IsAvailable     *bool     `json:"isAvailable"`
	Categories      *[]string `json:"categories" binding:"omitempty,dive,uuid"`
}
