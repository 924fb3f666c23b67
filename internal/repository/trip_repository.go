package repository

import (
	"context"
	"database/sql"

	"github.com/delgrossoviaggi/bus-booking/internal/model"
)

// TripRepo provides CRUD operations over the destination catalog.
// Trips are independent of bookings: a booking copies the trip name as
// free text at creation time, so renaming or deleting a trip never
// touches existing bookings.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo returns a TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

// List returns all trips ordered by date ascending with dateless trips
// last.  An empty slice is returned when the catalog is empty.
func (r *TripRepo) List(ctx context.Context) ([]model.Trip, error) {
	const q = `SELECT id, name, date, created_at, updated_at
	           FROM trips
	           ORDER BY date IS NULL, date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Trip, 0)
	for rows.Next() {
		var t model.Trip
		var date sql.NullTime
		if err := rows.Scan(&t.ID, &t.Name, &date, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if date.Valid {
			d := date.Time.Format(dateLayout)
			t.Date = &d
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a new trip and returns it with store-assigned fields
// populated.  Duplicate names are permitted.
func (r *TripRepo) Create(ctx context.Context, name string, date *string) (*model.Trip, error) {
	const q = `INSERT INTO trips (name, date) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, name, nullable(date))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, uint64(id))
}

// Update renames and/or re-dates an existing trip.  It returns
// ErrTripNotFound when the id does not exist.
func (r *TripRepo) Update(ctx context.Context, id uint64, name string, date *string) (*model.Trip, error) {
	const q = `UPDATE trips SET name = ?, date = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, name, nullable(date), id); err != nil {
		return nil, err
	}
	t, err := r.getByID(ctx, id)
	if err == sql.ErrNoRows {
		return nil, ErrTripNotFound
	}
	return t, err
}

// Delete removes a trip by id.  Absent ids are a success.
func (r *TripRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM trips WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *TripRepo) getByID(ctx context.Context, id uint64) (*model.Trip, error) {
	const q = `SELECT id, name, date, created_at, updated_at FROM trips WHERE id = ?`
	var t model.Trip
	var date sql.NullTime
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &date, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if date.Valid {
		d := date.Time.Format(dateLayout)
		t.Date = &d
	}
	return &t, nil
}

// nullable converts an optional string into a driver value so an
// absent date is stored as NULL rather than an empty string.
func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
