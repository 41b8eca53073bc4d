package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Guests struct {
	Adults    int   `json:"adults"`
	ChildAges []int `json:"child_ages,omitempty"`
}

func (g Guests) Total() int {
	return g.Adults + len(g.ChildAges)
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is a reservation of a listing for a normalized date range.
// ListingTitle and PricePerNight are snapshots taken at creation time,
// so booking history stays meaningful even if the catalog changes.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	ListingID     string        `json:"listing_id"`
	ListingTitle  string        `json:"listing_title"`
	PricePerNight int64         `json:"price_per_night"`
	CheckIn       time.Time     `json:"check_in"`
	CheckOut      time.Time     `json:"check_out"`
	Guests        Guests        `json:"guests"`
	Contact       Contact       `json:"contact"`
	Status        BookingStatus `json:"status"`
	Nights        int           `json:"nights"`
	TotalPrice    int64         `json:"total_price"`
	CreatedAt     time.Time     `json:"created_at"`
	ConfirmedAt   *time.Time    `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
}

// Blocks reports whether this booking removes its date range from
// availability. Only confirmed bookings block; pending holds and
// cancelled bookings do not.
func (b *Booking) Blocks() bool {
	return b.Status == BookingConfirmed
}

func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut)
}
