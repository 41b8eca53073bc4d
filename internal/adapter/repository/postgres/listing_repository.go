package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nokras/hotel-booking/internal/core/domain"
)

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) GetByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	query := `
	SELECT id, title, hotel_name, hotel_stars, city, room_type, price_per_night, beds, max_guests
	FROM listings
	WHERE id = $1
	`

	var listing domain.Listing

	err := r.db.QueryRowContext(ctx, query, listingID).Scan(
		&listing.ID,
		&listing.Title,
		&listing.HotelName,
		&listing.HotelStars,
		&listing.City,
		&listing.RoomType,
		&listing.PricePerNight,
		&listing.Beds,
		&listing.MaxGuests,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}

		return nil, err
	}

	return &listing, nil
}

func (r *ListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	query := `
	SELECT id, title, hotel_name, hotel_stars, city, room_type, price_per_night, beds, max_guests
	FROM listings
	ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var listings []domain.Listing

	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.Title,
			&listing.HotelName,
			&listing.HotelStars,
			&listing.City,
			&listing.RoomType,
			&listing.PricePerNight,
			&listing.Beds,
			&listing.MaxGuests,
		); err != nil {
			return nil, err
		}

		listings = append(listings, listing)
	}

	return listings, rows.Err()
}
