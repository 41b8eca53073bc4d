package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nokras/hotel-booking/internal/adapter/repository/memory"
	"github.com/nokras/hotel-booking/internal/core/domain"
)

func newBooking(listingID string, createdAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		ListingID: listingID,
		Status:    domain.BookingConfirmed,
		CheckIn:   time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC),
		CreatedAt: createdAt,
	}
}

func TestBookingRepository_CopySemantics(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	booking := newBooking("riverine-suite", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, booking))

	got, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)

	// Mutating the returned record must not touch the store.
	got.Status = domain.BookingCancelled

	again, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, again.Status)
}

func TestBookingRepository_NotFound(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	err = repo.UpdateStatus(ctx, uuid.New(), domain.BookingCancelled, time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingRepository_UpdateStatusStampsTimestamps(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	booking := newBooking("riverine-suite", time.Now().UTC())
	booking.Status = domain.BookingPending
	require.NoError(t, repo.Create(ctx, booking))

	confirmedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, booking.ID, domain.BookingConfirmed, confirmedAt))

	got, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	require.NotNil(t, got.ConfirmedAt)
	assert.Equal(t, confirmedAt, *got.ConfirmedAt)
	assert.Nil(t, got.CancelledAt)

	cancelledAt := confirmedAt.Add(time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, booking.ID, domain.BookingCancelled, cancelledAt))

	got, err = repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, cancelledAt, *got.CancelledAt)
}

func TestBookingRepository_ListByListing(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := newBooking("riverine-suite", base)
	second := newBooking("riverine-suite", base.Add(time.Minute))
	other := newBooking("enkare-deluxe", base)

	for _, b := range []*domain.Booking{second, other, first} {
		require.NoError(t, repo.Create(ctx, b))
	}

	bookings, err := repo.ListByListing(ctx, "riverine-suite")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, first.ID, bookings[0].ID)
	assert.Equal(t, second.ID, bookings[1].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBookingRepository_ListExpiredPending(t *testing.T) {
	repo := memory.NewBookingRepository()
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	expired := newBooking("riverine-suite", now.Add(-time.Hour))
	expired.Status = domain.BookingPending
	expiredAt := now.Add(-time.Minute)
	expired.ExpiresAt = &expiredAt

	live := newBooking("riverine-suite", now)
	live.Status = domain.BookingPending
	liveAt := now.Add(10 * time.Minute)
	live.ExpiresAt = &liveAt

	confirmed := newBooking("riverine-suite", now)

	for _, b := range []*domain.Booking{expired, live, confirmed} {
		require.NoError(t, repo.Create(ctx, b))
	}

	ids, err := repo.ListExpiredPending(ctx, now)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, expired.ID, ids[0])
}

func TestListingRepository(t *testing.T) {
	repo := memory.NewListingRepository([]domain.Listing{
		{ID: "b-listing", Title: "B", PricePerNight: 200},
		{ID: "a-listing", Title: "A", PricePerNight: 100},
	})
	ctx := context.Background()

	listing, err := repo.GetByID(ctx, "a-listing")
	require.NoError(t, err)
	assert.Equal(t, int64(100), listing.PricePerNight)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	listings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "a-listing", listings[0].ID)

	require.NoError(t, repo.SetPrice("a-listing", 150))

	listing, err = repo.GetByID(ctx, "a-listing")
	require.NoError(t, err)
	assert.Equal(t, int64(150), listing.PricePerNight)
}
