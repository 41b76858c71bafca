package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/review"
)

type Handler struct {
	service review.Service
}

func NewHandler(service review.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide rent_id and ratings between 1 and 5")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), review.CreateRequest{
		ReviewerID:  auth.GetUserID(c),
		RentID:      body.RentID,
		RatingItem:  body.RatingItem,
		RatingOwner: body.RatingOwner,
		Comment:     body.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if s := auth.GetSession(c); s != nil {
		rv.ReviewerName = s.Name
	}

	c.JSON(http.StatusCreated, ReviewEnvelope{Success: true, Message: "Review submitted", Review: NewReviewResponse(rv)})
}

func (h *Handler) ListByItem(c *gin.Context) {
	var uri ItemReviewsRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid item id")
		return
	}

	reviews, err := h.service.ListByItem(c.Request.Context(), uri.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		out[i] = NewReviewResponse(rv)
	}
	c.JSON(http.StatusOK, ReviewListResponse{Success: true, Reviews: out})
}
