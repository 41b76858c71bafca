package http

import (
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/category"
)

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"category_name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
	}
}

type ListResponse struct {
	Success    bool               `json:"success"`
	Categories []CategoryResponse `json:"categories"`
}

type CategoryEnvelope struct {
	Success  bool             `json:"success"`
	Category CategoryResponse `json:"category"`
}

type CreateRequest struct {
	Name        string `json:"category_name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=500"`
	Icon        string `json:"icon" binding:"max=200"`
}
