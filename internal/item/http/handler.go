package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/request"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if req.PageSize == 0 {
		req.PageSize = 12
	}
	req.Normalize()

	sortBy := req.SortBy
	if sortBy == "createdAt" {
		sortBy = item.SortNewest
	}

	items, total, err := h.service.List(c.Request.Context(), item.Filter{
		City:       req.City,
		Pincode:    req.Pincode,
		Gender:     req.Gender,
		Size:       req.Size,
		Search:     req.Search,
		CategoryID: req.Category,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		SortBy:     sortBy,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(out, req.Page, req.PageSize, total))
}

// MyListings returns every item of the caller, including unavailable ones.
func (h *Handler) MyListings(c *gin.Context) {
	var req request.ListParams
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	req.Normalize()

	items, total, err := h.service.List(c.Request.Context(), item.Filter{
		OwnerID:            auth.GetUserID(c),
		IncludeUnavailable: true,
		Page:               req.Page,
		PageSize:           req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(out, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	it, err := h.service.Create(c.Request.Context(), item.CreateRequest{
		OwnerID:         auth.GetUserID(c),
		ShopID:          body.ShopID,
		Title:           body.Title,
		Description:     body.Description,
		PricePerDay:     body.PricePerDay,
		SecurityDeposit: body.SecurityDeposit,
		Gender:          body.Gender,
		Sizes:           body.Sizes,
		City:            body.City,
		Pincode:         body.Pincode,
		CategoryIDs:     body.Categories,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ItemEnvelope{Success: true, Message: "Item listed successfully", Item: NewResponse(it)})
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, item.ErrNotFound)
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemEnvelope{Success: true, Item: NewResponse(it)})
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, item.ErrNotFound)
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	it, err := h.service.Update(c.Request.Context(), uri.ID, auth.GetSession(c), item.UpdateRequest{
		Title:           body.Title,
		Description:     body.Description,
		PricePerDay:     body.PricePerDay,
		SecurityDeposit: body.SecurityDeposit,
		IsAvailable:     body.IsAvailable,
		CategoryIDs:     body.Categories,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemEnvelope{Success: true, Message: "Item updated", Item: NewResponse(it)})
}

// Delete removes a listing owned by the caller. Admins may remove any listing.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, item.ErrNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Item removed"})
}
