package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nokras/hotel-booking/internal/core/domain"
)

// ListingRepository is the default catalog store: a mutex-guarded map
// loaded once from seed data.
type ListingRepository struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
}

func NewListingRepository(listings []domain.Listing) *ListingRepository {
	m := make(map[string]domain.Listing, len(listings))
	for _, l := range listings {
		m[l.ID] = l
	}

	return &ListingRepository{listings: m}
}

func (r *ListingRepository) GetByID(_ context.Context, listingID string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}

	return &listing, nil
}

func (r *ListingRepository) List(_ context.Context) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]domain.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		listings = append(listings, l)
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].ID < listings[j].ID })

	return listings, nil
}

// SetPrice replaces a listing's nightly rate. Not part of the
// repository port; exists so tests can show that bookings keep their
// price snapshot when the catalog moves.
func (r *ListingRepository) SetPrice(listingID string, pricePerNight int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return domain.ErrListingNotFound
	}

	listing.PricePerNight = pricePerNight
	r.listings[listingID] = listing

	return nil
}
