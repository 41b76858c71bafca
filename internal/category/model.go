package category

import (
	"net/http"
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "Category not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "Category name is required")
	ErrNameTaken    = apperror.New(http.StatusConflict, "Category already exists")
)

// Category groups catalog items, e.g. "Bridal" or "Ethnic Wear".
// Names are unique regardless of case.
type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time
}
