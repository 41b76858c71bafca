package http

import (
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/review"
	userHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user/http"
)

type CreateReviewRequest struct {
	RentID      string `json:"rent_id" binding:"required,uuid"`
	RatingItem  int    `json:"rating_item" binding:"required,min=1,max=5"`
	RatingOwner int    `json:"rating_owner" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

type ItemReviewsRequest struct {
	ItemID string `uri:"itemId" binding:"required,uuid"`
}

type ReviewResponse struct {
	ID          string           `json:"id"`
	Reviewer    userHttp.UserTag `json:"reviewer"`
	ItemID      string           `json:"itemId"`
	OwnerID     string           `json:"ownerId"`
	RentID      string           `json:"rentId"`
	RatingItem  int              `json:"rating_item"`
	RatingOwner int              `json:"rating_owner"`
	Comment     string           `json:"comment"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:          rv.ID,
		Reviewer:    userHttp.UserTag{ID: rv.ReviewerID, Name: rv.ReviewerName},
		ItemID:      rv.ItemID,
		OwnerID:     rv.OwnerID,
		RentID:      rv.RentID,
		RatingItem:  rv.RatingItem,
		RatingOwner: rv.RatingOwner,
		Comment:     rv.Comment,
		CreatedAt:   rv.CreatedAt,
	}
}

type ReviewEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Review  ReviewResponse `json:"review"`
}

type ReviewListResponse struct {
	Success bool             `json:"success"`
	Reviews []ReviewResponse `json:"reviews"`
}
