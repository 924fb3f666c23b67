package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/delgrossoviaggi/bus-booking/internal/model"
)

// dateLayout is the wire format for DATE columns.  Connections are
// opened with parseTime=true, so DATE values scan as time.Time and are
// rendered back to plain YYYY-MM-DD here before they leave the
// repository.
const dateLayout = "2006-01-02"

// BookingRepo provides persistence for seat bookings.  The bookings
// table carries a unique key on (seat, bus_type); Insert relies on it
// to decide the winner when two clients claim the same seat
// concurrently.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for callers that need it (tests,
// transactions).
func (r *BookingRepo) DB() *sql.DB { return r.db }

// ListByBusType returns all bookings for one coach type ordered by
// seat number ascending.  An empty slice, not nil, is returned when
// no bookings exist.
func (r *BookingRepo) ListByBusType(ctx context.Context, busType string) ([]model.Booking, error) {
	const q = `SELECT id, ref, seat, first_name, last_name, phone, departure_place,
	                  departure_date, destination, bus_type, created_at
	           FROM bookings
	           WHERE bus_type = ?
	           ORDER BY seat ASC`
	rows, err := r.db.QueryContext(ctx, q, busType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		var depDate time.Time
		if err := rows.Scan(
			&b.ID, &b.Ref, &b.Seat, &b.FirstName, &b.LastName, &b.Phone,
			&b.DeparturePlace, &depDate, &b.Destination, &b.BusType, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		b.DepartureDate = depDate.Format(dateLayout)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Insert stores a new booking and populates the generated ID, Ref and
// CreatedAt on the provided record.  When the unique key on
// (seat, bus_type) rejects the row, ErrSeatTaken is returned and
// nothing is written.  Any other driver error is passed through.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	b.Ref = uuid.NewString()
	const q = `INSERT INTO bookings
	           (ref, seat, first_name, last_name, phone, departure_place,
	            departure_date, destination, bus_type)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.Ref, b.Seat, b.FirstName, b.LastName, b.Phone,
		b.DeparturePlace, b.DepartureDate, b.Destination, b.BusType,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") { // mysql duplicate entry
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to populate store-assigned defaults.  The
	// insert has committed by this point, so a failed read-back leaves
	// CreatedAt zero instead of reporting an error for a persisted row.
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt); err != nil {
		b.CreatedAt = time.Time{}
	}
	return nil
}

// Delete removes a booking by id.  Deleting an id that no longer
// exists is a success, so a double cancel of the same booking does not
// surface an error.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM bookings WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// CountByBusType returns the number of stored bookings for one coach
// type.  Used for the advisory "bus full" computation.
func (r *BookingRepo) CountByBusType(ctx context.Context, busType string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE bus_type = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, busType).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
