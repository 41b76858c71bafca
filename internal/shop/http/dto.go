package http

import (
	"time"

	itemHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item/http"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/request"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/shop"
)

type OwnerTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ShopResponse struct {
	ID           string    `json:"id"`
	Owner        OwnerTag  `json:"owner"`
	Name         string    `json:"shop_name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Pincode      string    `json:"pincode"`
	Phone        string    `json:"phone"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"isActive"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"totalReviews"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewResponse(sh *shop.Shop) ShopResponse {
	return ShopResponse{
		ID:           sh.ID,
		Owner:        OwnerTag{ID: sh.OwnerID, Name: sh.OwnerName, Email: sh.OwnerEmail},
		Name:         sh.Name,
		Address:      sh.Address,
		City:         sh.City,
		Pincode:      sh.Pincode,
		Phone:        sh.Phone,
		Description:  sh.Description,
		IsActive:     sh.IsActive,
		Rating:       sh.Rating,
		TotalReviews: sh.TotalReviews,
		CreatedAt:    sh.CreatedAt,
		UpdatedAt:    sh.UpdatedAt,
	}
}

type ShopEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Shop    ShopResponse `json:"shop"`
}

// ShopDetailResponse is a shop together with a first page of its available items.
type ShopDetailResponse struct {
	Success bool                    `json:"success"`
	Shop    ShopResponse            `json:"shop"`
	Items   []itemHttp.ItemResponse `json:"items"`
}

type ListShopsRequest struct {
	request.ListParams
	City    string `form:"city"`
	Pincode string `form:"pincode"`
	Search  string `form:"search"`
}

type CreateRequest struct {
	Name        string `json:"shop_name" binding:"required,max=100"`
	Address     string `json:"address" binding:"required,max=300"`
	City        string `json:"city" binding:"required,max=100"`
	Pincode     string `json:"pincode" binding:"required,max=10"`
	Phone       string `json:"phone" binding:"max=20"`
	Description string `json:"description" binding:"max=1000"`
}

type UpdateRequest struct {
	Name        *string `json:"shop_name" binding:"omitempty,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=300"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	Pincode     *string `json:"pincode" binding:"omitempty,max=10"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	IsActive    *bool   `json:"isActive"`
}
