package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/request"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/rent"
)

type Handler struct {
	service rent.Service
}

func NewHandler(service rent.Service) *Handler {
	return &Handler{service: service}
}

// Create books an item for the authenticated renter.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide item_id, start_date and end_date")
		return
	}

	r, err := h.service.Create(c.Request.Context(), rent.CreateRequest{
		ItemID:    req.ItemID,
		RenterID:  auth.GetUserID(c),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, RentEnvelope{Success: true, Message: "Booking request sent", Rent: NewRentResponse(r)})
}

func (h *Handler) MyBookings(c *gin.Context) {
	var req request.ListParams
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	req.Normalize()

	rents, total, err := h.service.ListForRenter(c.Request.Context(), auth.GetUserID(c), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRentListResponse(rents, req.Page, req.PageSize, total))
}

func (h *Handler) MyRequests(c *gin.Context) {
	var req request.ListParams
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	req.Normalize()

	rents, total, err := h.service.ListForOwner(c.Request.Context(), auth.GetUserID(c), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRentListResponse(rents, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, rent.ErrNotFound)
		return
	}

	r, err := h.service.Get(c.Request.Context(), uri.ID, auth.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, RentEnvelope{Success: true, Rent: NewRentResponse(r)})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, rent.ErrNotFound)
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, rent.ErrInvalidStatus)
		return
	}

	status := rent.Status(body.Status)
	r, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, auth.GetSession(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, RentEnvelope{Success: true, Message: "Rental " + string(status), Rent: NewRentResponse(r)})
}
