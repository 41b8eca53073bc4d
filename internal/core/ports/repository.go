package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nokras/hotel-booking/internal/core/domain"
)

type ListingRepository interface {
	GetByID(ctx context.Context, listingID string) (*domain.Listing, error)
	List(ctx context.Context) ([]domain.Listing, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	ListByListing(ctx context.Context, listingID string) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	// UpdateStatus transitions a booking and stamps confirmed_at or
	// cancelled_at depending on the target status. Records are never
	// deleted; cancellation is a status change only.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus, at time.Time) error
	ListExpiredPending(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

// Clock is the single authoritative source of "now". Every past-date
// decision in the engine routes through it so tests can pin time.
type Clock interface {
	Now() time.Time
}
