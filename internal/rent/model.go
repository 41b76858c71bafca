package rent

import (
	"net/http"
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "Rental not found")
	ErrItemNotFound      = apperror.New(http.StatusNotFound, "Item not found")
	ErrItemUnavailable   = apperror.New(http.StatusBadRequest, "Item is not available")
	ErrInvalidPeriod     = apperror.New(http.StatusBadRequest, "Invalid rental period")
	ErrBookingConflict   = apperror.New(http.StatusBadRequest, "Item is already booked for these dates")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "Invalid rental status")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "Invalid status transition")
	ErrForbidden         = apperror.New(http.StatusForbidden, "Not authorized")
	ErrOwnerOnly         = apperror.Wrap(ErrForbidden, http.StatusForbidden, "Only the owner can update this status")
	ErrRenterOnly        = apperror.Wrap(ErrForbidden, http.StatusForbidden, "Only the renter can cancel")
	ErrStaleUpdate       = apperror.New(http.StatusConflict, "Rental was modified concurrently, please retry")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// transitions is the lifecycle graph. Statuses without an entry are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusActive, StatusCancelled},
	StatusActive:   {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusActive, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Blocking statuses hold the item's dates against other renters.
func (s Status) Blocking() bool {
	return s == StatusApproved || s == StatusActive
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether the lifecycle allows moving from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Actor is the party allowed to request a target status.
type Actor int

const (
	ActorNone Actor = iota
	ActorOwner
	ActorRenter
)

// RequiredActor returns who may move a rent into status to.
// Owners drive approval and fulfilment; renters may only cancel.
func RequiredActor(to Status) Actor {
	switch to {
	case StatusApproved, StatusRejected, StatusActive, StatusCompleted:
		return ActorOwner
	case StatusCancelled:
		return ActorRenter
	default:
		return ActorNone
	}
}

// Rent is a booking of an item for an inclusive date range.
// Amounts are whole rupees fixed at creation.
type Rent struct {
	ID       string
	ItemID   string
	RenterID string
	OwnerID  string

	StartDate time.Time
	EndDate   time.Time
	Status    Status

	TotalAmount     int64
	SecurityDeposit int64
	Notes           string

	// Version increments on every write and guards status updates.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Display fields filled by the repository join.
	ItemTitle       string
	ItemPricePerDay int64
	ItemCity        string
	RenterName      string
	RenterEmail     string
	RenterPhone     string
	OwnerName       string
	OwnerEmail      string
	OwnerPhone      string
}

type Filter struct {
	RenterID string
	OwnerID  string
	Page     int
	PageSize int
}
