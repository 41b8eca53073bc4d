package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nokras/hotel-booking/internal/core/domain"
	"github.com/nokras/hotel-booking/internal/core/ports"
)

const (
	maxChildAge     = 17
	historyCacheTTL = time.Minute
)

type CreateBookingRequest struct {
	ListingID string         `json:"listing_id"`
	CheckIn   time.Time      `json:"check_in"`
	CheckOut  time.Time      `json:"check_out"`
	Guests    domain.Guests  `json:"guests"`
	Contact   domain.Contact `json:"contact"`
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// BookingService owns availability and the booking lifecycle. Mutating
// operations serialize per listing, so the availability scan and the
// write it guards form one critical section.
type BookingService struct {
	listingRepo ports.ListingRepository
	bookingRepo ports.BookingRepository
	cache       *redis.Client
	clock       ports.Clock

	// holdTTL > 0 creates bookings as pending holds that must be
	// confirmed before they expire; zero creates directly into
	// confirmed (no external confirmation step wired in).
	holdTTL time.Duration

	mu           sync.Mutex
	listingLocks map[string]*sync.Mutex
}

func NewBookingService(
	listingRepo ports.ListingRepository,
	bookingRepo ports.BookingRepository,
	cache *redis.Client,
	clock ports.Clock,
	holdTTL time.Duration,
) *BookingService {
	if clock == nil {
		clock = systemClock{}
	}

	return &BookingService{
		listingRepo:  listingRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		clock:        clock,
		holdTTL:      holdTTL,
		listingLocks: make(map[string]*sync.Mutex),
	}
}

func (s *BookingService) listingLock(listingID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.listingLocks[listingID]
	if !ok {
		lock = &sync.Mutex{}
		s.listingLocks[listingID] = lock
	}

	return lock
}

func (s *BookingService) FindListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return s.listingRepo.GetByID(ctx, listingID)
}

func (s *BookingService) ListListings(ctx context.Context) ([]domain.Listing, error) {
	return s.listingRepo.List(ctx)
}

// hasConflict scans the current booking set for a confirmed booking
// whose normalized range overlaps [checkIn, checkOut). It always reads
// the repository directly; availability is never served from cache.
func (s *BookingService) hasConflict(ctx context.Context, listingID string, checkIn, checkOut time.Time) (bool, error) {
	bookings, err := s.bookingRepo.ListByListing(ctx, listingID)
	if err != nil {
		return false, fmt.Errorf("list bookings for listing %s: %w", listingID, err)
	}

	for _, b := range bookings {
		if b.Blocks() && b.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}

	return false, nil
}

// CheckAvailability reports whether the listing is free for the range.
// Read-only; safe to call speculatively. An unknown listing is a hard
// failure, not "unavailable".
func (s *BookingService) CheckAvailability(ctx context.Context, listingID string, checkIn, checkOut time.Time) (bool, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return false, err
	}

	in := domain.NormalizeCheckIn(checkIn)
	out := domain.NormalizeCheckOut(checkOut)

	if !out.After(in) {
		return false, nil
	}

	if in.Before(s.clock.Now()) {
		return false, nil
	}

	conflict, err := s.hasConflict(ctx, listingID, in, out)
	if err != nil {
		return false, err
	}

	return !conflict, nil
}

func validateGuests(guests domain.Guests, listing *domain.Listing) error {
	if guests.Adults < 1 {
		return domain.ErrInvalidGuests
	}

	for _, age := range guests.ChildAges {
		if age < 0 || age > maxChildAge {
			return domain.ErrInvalidGuests
		}
	}

	if guests.Total() > listing.MaxGuests {
		return domain.ErrCapacityExceeded
	}

	return nil
}

func validateContact(contact domain.Contact) error {
	if contact.Name == "" || contact.Email == "" || contact.Phone == "" {
		return domain.ErrInvalidContact
	}

	return nil
}

// CreateBooking validates the request, re-runs the availability scan
// inside the per-listing critical section and persists the new record.
// Two overlapping requests for the same listing can never both succeed.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	in := domain.NormalizeCheckIn(req.CheckIn)
	out := domain.NormalizeCheckOut(req.CheckOut)

	if !out.After(in) {
		return nil, domain.ErrInvalidDateRange
	}

	now := s.clock.Now()
	if in.Before(now) {
		return nil, domain.ErrPastDate
	}

	if err := validateGuests(req.Guests, listing); err != nil {
		return nil, err
	}

	if err := validateContact(req.Contact); err != nil {
		return nil, err
	}

	nights := domain.Nights(in, out)
	if nights < 1 {
		return nil, domain.ErrMinimumStay
	}

	lock := s.listingLock(listing.ID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := s.hasConflict(ctx, listing.ID, in, out)
	if err != nil {
		return nil, err
	}

	if conflict {
		return nil, domain.ErrRoomUnavailable
	}

	booking := &domain.Booking{
		ID:            uuid.New(),
		ListingID:     listing.ID,
		ListingTitle:  listing.Title,
		PricePerNight: listing.PricePerNight,
		CheckIn:       in,
		CheckOut:      out,
		Guests:        req.Guests,
		Contact:       req.Contact,
		Nights:        nights,
		TotalPrice:    int64(nights) * listing.PricePerNight,
		CreatedAt:     now,
	}

	if s.holdTTL > 0 {
		expiresAt := now.Add(s.holdTTL)
		booking.Status = domain.BookingPending
		booking.ExpiresAt = &expiresAt
	} else {
		confirmedAt := now
		booking.Status = domain.BookingConfirmed
		booking.ConfirmedAt = &confirmedAt
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}

	s.invalidateHistory(ctx, listing.ID)

	return booking, nil
}

// ConfirmBooking transitions a pending hold to confirmed. The overlap
// scan is repeated under the listing lock because pending holds do not
// block availability: a confirmed booking may have taken the range
// while the hold was open.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	lock := s.listingLock(booking.ListingID)
	lock.Lock()
	defer lock.Unlock()

	booking, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != domain.BookingPending {
		return nil, domain.ErrNotPending
	}

	// An expired hold is the expiry worker's to cancel, even if the
	// worker has not swept it yet.
	if booking.ExpiresAt != nil && booking.ExpiresAt.Before(s.clock.Now()) {
		return nil, domain.ErrHoldExpired
	}

	conflict, err := s.hasConflict(ctx, booking.ListingID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		return nil, err
	}

	if conflict {
		return nil, domain.ErrRoomUnavailable
	}

	now := s.clock.Now()
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingConfirmed, now); err != nil {
		return nil, fmt.Errorf("confirm booking %s: %w", bookingID, err)
	}

	s.invalidateHistory(ctx, booking.ListingID)

	booking.Status = domain.BookingConfirmed
	booking.ConfirmedAt = &now

	return booking, nil
}

// CancelBooking marks the booking cancelled; the record is kept.
// It takes the same per-listing lock as creation, so a cancel either
// completes before a racing create's availability scan or after it,
// never in the middle.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	lock := s.listingLock(booking.ListingID)
	lock.Lock()
	defer lock.Unlock()

	booking, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.Status == domain.BookingCancelled {
		return domain.ErrAlreadyCancelled
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingCancelled, s.clock.Now()); err != nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.invalidateHistory(ctx, booking.ListingID)

	return nil
}

// GetBookingsForListing returns the full history for a listing,
// cancelled bookings included. The cached copy is deleted on every
// mutation for that listing, so it can never mask a cancellation.
func (s *BookingService) GetBookingsForListing(ctx context.Context, listingID string) ([]*domain.Booking, error) {
	key := historyCacheKey(listingID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var bookings []*domain.Booking
			if err := json.Unmarshal([]byte(cached), &bookings); err == nil {
				return bookings, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("history cache read for %s failed: %v", listingID, err)
		}
	}

	bookings, err := s.bookingRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(bookings); err == nil {
			if err := s.cache.Set(ctx, key, data, historyCacheTTL).Err(); err != nil {
				log.Printf("history cache write for %s failed: %v", listingID, err)
			}
		}
	}

	return bookings, nil
}

func (s *BookingService) GetAllBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookingRepo.ListAll(ctx)
}

func historyCacheKey(listingID string) string {
	return fmt.Sprintf("bookings:%s", listingID)
}

func (s *BookingService) invalidateHistory(ctx context.Context, listingID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, historyCacheKey(listingID)).Err(); err != nil {
		log.Printf("history cache invalidation for %s failed: %v", listingID, err)
	}
}

// RunHoldExpiry periodically cancels pending holds whose TTL elapsed,
// freeing their date ranges. Only useful when the service was built
// with a hold TTL.
func (s *BookingService) RunHoldExpiry(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Println("Hold expiry worker started")

	for {
		select {
		case <-ctx.Done():
			log.Println("Hold expiry worker stopped")
			return
		case <-ticker.C:
			s.ExpireHolds(ctx)
		}
	}
}

// ExpireHolds cancels every pending booking whose hold has expired.
func (s *BookingService) ExpireHolds(ctx context.Context) {
	ids, err := s.bookingRepo.ListExpiredPending(ctx, s.clock.Now())
	if err != nil {
		log.Printf("Error fetching expired holds: %v", err)
		return
	}

	for _, id := range ids {
		if err := s.CancelBooking(ctx, id); err != nil {
			log.Printf("Failed to expire hold %s: %v", id, err)
			continue
		}

		log.Printf("Hold %s expired and range released", id)
	}
}
