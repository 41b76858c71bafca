package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/category"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/request"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
)

type Handler struct {
	service category.Service
}

func NewHandler(service category.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	cats, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]CategoryResponse, len(cats))
	for i, cat := range cats {
		out[i] = NewResponse(cat)
	}
	c.JSON(http.StatusOK, ListResponse{Success: true, Categories: out})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide a category name")
		return
	}

	cat, err := h.service.Create(c.Request.Context(), category.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Icon:        body.Icon,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryEnvelope{Success: true, Category: NewResponse(cat)})
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, category.ErrNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Success: true, Message: "Category deleted"})
}
