package entities

import (
	"time"

	"areamsg/internal/domain"
)

// Region is a land claim that can be rented or bought.
type Region struct {
	Name        string
	Type        string // "rent" or "buy"
	World       string
	Owner       string // empty = available
	Price       float64
	Duration    time.Duration // rent period, zero for sales
	RentedUntil time.Time     // zero = not rented
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRented reports whether a tenant currently holds the region.
func (r *Region) IsRented() bool {
	return r.Type == domain.RegionTypeRent && r.Owner != "" && r.RentedUntil.After(time.Now())
}
