package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nokras/hotel-booking/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	id              text PRIMARY KEY,
	title           text NOT NULL,
	hotel_name      text NOT NULL,
	hotel_stars     integer NOT NULL,
	city            text NOT NULL,
	room_type       text NOT NULL,
	price_per_night bigint NOT NULL,
	beds            integer NOT NULL,
	max_guests      integer NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id              uuid PRIMARY KEY,
	listing_id      text NOT NULL REFERENCES listings (id),
	listing_title   text NOT NULL,
	price_per_night bigint NOT NULL,
	check_in        timestamptz NOT NULL,
	check_out       timestamptz NOT NULL,
	adults          integer NOT NULL,
	child_ages      integer[] NOT NULL DEFAULT '{}',
	contact_name    text NOT NULL,
	contact_email   text NOT NULL,
	contact_phone   text NOT NULL,
	status          text NOT NULL,
	nights          integer NOT NULL,
	total_price     bigint NOT NULL,
	created_at      timestamptz NOT NULL,
	confirmed_at    timestamptz,
	cancelled_at    timestamptz,
	expires_at      timestamptz
);

CREATE INDEX IF NOT EXISTS idx_bookings_listing ON bookings (listing_id);
CREATE INDEX IF NOT EXISTS idx_bookings_pending_expiry ON bookings (expires_at) WHERE status = 'pending';
`

// EnsureSchema creates the tables on first start and upserts the
// catalog seed. Listing rows already present keep their values.
func EnsureSchema(ctx context.Context, db *sql.DB, listings []domain.Listing) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, l := range listings {
		_, err := db.ExecContext(ctx, `
		INSERT INTO listings (id, title, hotel_name, hotel_stars, city, room_type, price_per_night, beds, max_guests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
		`, l.ID, l.Title, l.HotelName, l.HotelStars, l.City, l.RoomType, l.PricePerNight, l.Beds, l.MaxGuests)
		if err != nil {
			return fmt.Errorf("seed listing %s: %w", l.ID, err)
		}
	}

	return nil
}
