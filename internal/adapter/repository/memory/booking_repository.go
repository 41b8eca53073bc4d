package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nokras/hotel-booking/internal/core/domain"
)

// BookingRepository keeps the booking set in a mutex-guarded map.
// Records are stored and returned by value copy so callers can never
// mutate the store behind its back.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]domain.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[uuid.UUID]domain.Booking),
	}
}

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings[booking.ID] = *booking

	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	return &booking, nil
}

func (r *BookingRepository) ListByListing(_ context.Context, listingID string) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*domain.Booking

	for _, b := range r.bookings {
		if b.ListingID != listingID {
			continue
		}

		booking := b
		bookings = append(bookings, &booking)
	}

	sortByCreation(bookings)

	return bookings, nil
}

func (r *BookingRepository) ListAll(_ context.Context) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*domain.Booking, 0, len(r.bookings))

	for _, b := range r.bookings {
		booking := b
		bookings = append(bookings, &booking)
	}

	sortByCreation(bookings)

	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, bookingID uuid.UUID, status domain.BookingStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}

	booking.Status = status

	switch status {
	case domain.BookingConfirmed:
		booking.ConfirmedAt = &at
	case domain.BookingCancelled:
		booking.CancelledAt = &at
	}

	r.bookings[bookingID] = booking

	return nil
}

func (r *BookingRepository) ListExpiredPending(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID

	for id, b := range r.bookings {
		if b.Status == domain.BookingPending && b.ExpiresAt != nil && b.ExpiresAt.Before(now) {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func sortByCreation(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID.String() < bookings[j].ID.String()
		}

		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
