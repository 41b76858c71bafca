package rent

import (
	"math"
	"strings"
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

const day = 24 * time.Hour

// Period is a rental date range. Both ends are inclusive when checking overlap.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days is the number of billable days, rounding partial days up.
// It is zero or negative when End is not after Start.
func (p Period) Days() int64 {
	d := p.End.Sub(p.Start)
	if d <= 0 {
		return 0
	}
	return int64((d + day - 1) / day)
}

// Overlaps reports whether two periods share at least one instant.
// Touching boundaries count as overlapping.
func (p Period) Overlaps(o Period) bool {
	return !p.Start.After(o.End) && !p.End.Before(o.Start)
}

// Quote holds the amounts captured when a rent is created.
type Quote struct {
	Days            int64
	TotalAmount     int64
	SecurityDeposit int64
}

// NewQuote prices a period at the item's current rates.
func NewQuote(p Period, pricePerDay, securityDeposit int64) (Quote, error) {
	days := p.Days()
	if days < 1 {
		return Quote{}, ErrInvalidPeriod
	}
	if pricePerDay > 0 && days > math.MaxInt64/pricePerDay {
		return Quote{}, apperror.Wrap(ErrInvalidPeriod, ErrInvalidPeriod.Code,
			"Rental period is too long for this item's price")
	}
	return Quote{
		Days:            days,
		TotalAmount:     days * pricePerDay,
		SecurityDeposit: securityDeposit,
	}, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
// Calendar dates are interpreted as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidPeriod
}

// ParsePeriod parses both ends of a requested rental.
func ParsePeriod(start, end string) (Period, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Period{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Period{}, err
	}
	return Period{Start: s, End: e}, nil
}
