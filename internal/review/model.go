package review

import (
	"net/http"
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 500
)

var (
	ErrRentNotFound     = apperror.New(http.StatusNotFound, "Rental not found")
	ErrNotRenter        = apperror.New(http.StatusForbidden, "Only the renter can review")
	ErrRentNotCompleted = apperror.New(http.StatusBadRequest, "Can only review completed rentals")
	ErrAlreadyReviewed  = apperror.New(http.StatusBadRequest, "You have already reviewed this rental")
	ErrInvalidRating    = apperror.New(http.StatusBadRequest, "Ratings must be between 1 and 5")
	ErrCommentTooLong   = apperror.New(http.StatusBadRequest, "Comment cannot exceed 500 characters")
)

// Review is a renter's rating of a completed rent, for the item and for its owner.
type Review struct {
	ID           string
	ReviewerID   string
	ReviewerName string
	ItemID       string
	OwnerID      string
	RentID       string
	RatingItem   int
	RatingOwner  int
	Comment      string
	CreatedAt    time.Time
}
