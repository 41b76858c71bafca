package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error sends a JSON error response.
// AppErrors use their own status code and message. Anything else is logged
// with the request logger and reported as 500 without leaking the cause.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Success: false, Message: appErr.Message})
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("unhandled error")

	c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: "internal server error"})
}

// Fail sends an error response with an explicit status and message.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Success: false, Message: message})
}

// AbortWithError is Fail for middleware: it stops the handler chain.
func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Success: false, Message: message})
}
