package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item"
	itemHttp "github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/item/http"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/request"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/shop"
)

// shopItemsPageSize caps the items shown on a shop page.
const shopItemsPageSize = 12

type Handler struct {
	service     shop.Service
	itemService item.Service
}

func NewHandler(service shop.Service, itemService item.Service) *Handler {
	return &Handler{
		service:     service,
		itemService: itemService,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListShopsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if req.PageSize == 0 {
		req.PageSize = 12
	}
	req.Normalize()

	shops, total, err := h.service.List(c.Request.Context(), shop.Filter{
		City:     req.City,
		Pincode:  req.Pincode,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ShopResponse, len(shops))
	for i, sh := range shops {
		out[i] = NewResponse(sh)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(out, req.Page, req.PageSize, total))
}

func (h *Handler) MyShop(c *gin.Context) {
	sh, err := h.service.GetByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ShopEnvelope{Success: true, Shop: NewResponse(sh)})
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, shop.ErrNotFound)
		return
	}

	sh, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, _, err := h.itemService.List(c.Request.Context(), item.Filter{
		ShopID:   sh.ID,
		SortBy:   item.SortNewest,
		Page:     1,
		PageSize: shopItemsPageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]itemHttp.ItemResponse, len(items))
	for i, it := range items {
		out[i] = itemHttp.NewResponse(it)
	}

	c.JSON(http.StatusOK, ShopDetailResponse{Success: true, Shop: NewResponse(sh), Items: out})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	sh, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), shop.CreateRequest{
		Name:        body.Name,
		Address:     body.Address,
		City:        body.City,
		Pincode:     body.Pincode,
		Phone:       body.Phone,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ShopEnvelope{Success: true, Message: "Shop created", Shop: NewResponse(sh)})
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, shop.ErrNotFound)
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sh, err := h.service.Update(c.Request.Context(), uri.ID, auth.GetSession(c), shop.UpdateRequest{
		Name:        body.Name,
		Address:     body.Address,
		City:        body.City,
		Pincode:     body.Pincode,
		Phone:       body.Phone,
		Description: body.Description,
		IsActive:    body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ShopEnvelope{Success: true, Message: "Shop updated", Shop: NewResponse(sh)})
}
