package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nokras/hotel-booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, listing_id, listing_title, price_per_night, check_in, check_out,
	adults, child_ages, contact_name, contact_email, contact_phone,
	status, nights, total_price, created_at, confirmed_at, cancelled_at, expires_at
`

// Create inserts the booking inside a transaction that locks the parent
// listing row and re-checks range overlap first. The service already
// serializes per listing within one process; this keeps the
// no-double-booking guarantee when several processes share the database.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	var listingID string

	err = tx.QueryRowContext(ctx, `SELECT id FROM listings WHERE id = $1 FOR UPDATE`, booking.ListingID).Scan(&listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrListingNotFound
		}

		return fmt.Errorf("lock listing row: %w", err)
	}

	if booking.Status == domain.BookingConfirmed {
		var conflicts int

		err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE listing_id = $1 AND status = 'confirmed'
		AND check_out > $2 AND check_in < $3
		`, booking.ListingID, booking.CheckIn, booking.CheckOut).Scan(&conflicts)

		if err != nil {
			return fmt.Errorf("overlap re-check: %w", err)
		}

		if conflicts > 0 {
			return domain.ErrRoomUnavailable
		}
	}

	childAges := make(pq.Int64Array, 0, len(booking.Guests.ChildAges))
	for _, age := range booking.Guests.ChildAges {
		childAges = append(childAges, int64(age))
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO bookings (`+bookingColumns+`)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`,
		booking.ID,
		booking.ListingID,
		booking.ListingTitle,
		booking.PricePerNight,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests.Adults,
		childAges,
		booking.Contact.Name,
		booking.Contact.Email,
		booking.Contact.Phone,
		booking.Status,
		booking.Nights,
		booking.TotalPrice,
		booking.CreatedAt,
		booking.ConfirmedAt,
		booking.CancelledAt,
		booking.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking transaction: %w", err)
	}

	return nil
}

func scanBooking(s interface {
	Scan(dest ...any) error
}) (*domain.Booking, error) {
	var (
		booking     domain.Booking
		childAges   pq.Int64Array
		confirmedAt sql.NullTime
		cancelledAt sql.NullTime
		expiresAt   sql.NullTime
	)

	err := s.Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.ListingTitle,
		&booking.PricePerNight,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Guests.Adults,
		&childAges,
		&booking.Contact.Name,
		&booking.Contact.Email,
		&booking.Contact.Phone,
		&booking.Status,
		&booking.Nights,
		&booking.TotalPrice,
		&booking.CreatedAt,
		&confirmedAt,
		&cancelledAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}

	for _, age := range childAges {
		booking.Guests.ChildAges = append(booking.Guests.ChildAges, int(age))
	}

	if confirmedAt.Valid {
		booking.ConfirmedAt = &confirmedAt.Time
	}

	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

	if expiresAt.Valid {
		booking.ExpiresAt = &expiresAt.Time
	}

	return &booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}

		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []*domain.Booking

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) ListByListing(ctx context.Context, listingID string) ([]*domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE listing_id = $1 ORDER BY created_at, id`,
		listingID)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at, id`)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus, at time.Time) error {
	if status == domain.BookingConfirmed {
		return r.confirmPending(ctx, bookingID, at)
	}

	query := `
	UPDATE bookings
	SET status = $1,
		cancelled_at = CASE WHEN $1 = 'cancelled' THEN $2 ELSE cancelled_at END
	WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, at, bookingID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

// confirmPending flips a pending hold to confirmed under the same
// listing row lock Create takes. The service's keyed mutex only covers
// one process; without the lock and overlap re-check here, two
// processes could confirm overlapping holds.
func (r *BookingRepository) confirmPending(ctx context.Context, bookingID uuid.UUID, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	var (
		listingID         string
		checkIn, checkOut time.Time
	)

	err = tx.QueryRowContext(ctx,
		`SELECT listing_id, check_in, check_out FROM bookings WHERE id = $1`,
		bookingID).Scan(&listingID, &checkIn, &checkOut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrBookingNotFound
		}

		return err
	}

	err = tx.QueryRowContext(ctx, `SELECT id FROM listings WHERE id = $1 FOR UPDATE`, listingID).Scan(&listingID)
	if err != nil {
		return fmt.Errorf("lock listing row: %w", err)
	}

	var conflicts int

	err = tx.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM bookings
	WHERE listing_id = $1 AND status = 'confirmed'
	AND check_out > $2 AND check_in < $3
	`, listingID, checkIn, checkOut).Scan(&conflicts)

	if err != nil {
		return fmt.Errorf("overlap re-check: %w", err)
	}

	if conflicts > 0 {
		return domain.ErrRoomUnavailable
	}

	result, err := tx.ExecContext(ctx, `
	UPDATE bookings
	SET status = 'confirmed', confirmed_at = $2
	WHERE id = $1 AND status = 'pending'
	`, bookingID, at)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotPending
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit confirm transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) ListExpiredPending(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM bookings
	WHERE status = 'pending' AND expires_at < $1
	LIMIT 100
	`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}
