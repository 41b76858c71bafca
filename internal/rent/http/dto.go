package http

import (
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/rent"
	userHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user/http"
)

type CreateRentRequest struct {
	ItemID    string `json:"item_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Notes     string `json:"notes" binding:"max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ItemTag is the item summary embedded in a rent.
type ItemTag struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PricePerDay int64  `json:"pricePerDay"`
	City        string `json:"city"`
}

// PartyTag identifies the renter or the owner of a rent.
type PartyTag struct {
	userHttp.UserTag
	Email string `json:"email"`
	Phone string `json:"phone_no"`
}

type RentResponse struct {
	ID              string    `json:"id"`
	Item            ItemTag   `json:"item"`
	Renter          PartyTag  `json:"renter"`
	Owner           PartyTag  `json:"owner"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Status          string    `json:"status"`
	TotalAmount     int64     `json:"totalAmount"`
	SecurityDeposit int64     `json:"securityDeposit"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewRentResponse(r *rent.Rent) RentResponse {
	return RentResponse{
		ID: r.ID,
		Item: ItemTag{
			ID:          r.ItemID,
			Title:       r.ItemTitle,
			PricePerDay: r.ItemPricePerDay,
			City:        r.ItemCity,
		},
		Renter: PartyTag{
			UserTag: userHttp.UserTag{ID: r.RenterID, Name: r.RenterName},
			Email:   r.RenterEmail,
			Phone:   r.RenterPhone,
		},
		Owner: PartyTag{
			UserTag: userHttp.UserTag{ID: r.OwnerID, Name: r.OwnerName},
			Email:   r.OwnerEmail,
			Phone:   r.OwnerPhone,
		},
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Status:          string(r.Status),
		TotalAmount:     r.TotalAmount,
		SecurityDeposit: r.SecurityDeposit,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type RentEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Rent    RentResponse `json:"rent"`
}

type RentListResponse struct {
	Success  bool           `json:"success"`
	Rents    []RentResponse `json:"rents"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int            `json:"total"`
	Pages    int            `json:"pages"`
}

func NewRentListResponse(rents []*rent.Rent, page, pageSize, total int) RentListResponse {
	out := make([]RentResponse, len(rents))
	for i, r := range rents {
		out[i] = NewRentResponse(r)
	}
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return RentListResponse{
		Success:  true,
		Rents:    out,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    pages,
	}
}
