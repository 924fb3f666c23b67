package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/delgrossoviaggi/bus-booking/internal/auth"
	"github.com/delgrossoviaggi/bus-booking/internal/layout"
	"github.com/delgrossoviaggi/bus-booking/internal/model"
	"github.com/delgrossoviaggi/bus-booking/internal/queue"
	"github.com/delgrossoviaggi/bus-booking/internal/repository"
)

func newBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock, *[]queue.BookingCreatedEvent) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	published := &[]queue.BookingCreatedEvent{}
	svc := NewBookingService(repository.NewBookingRepo(db), func(_ context.Context, ev queue.BookingCreatedEvent) error {
		*published = append(*published, ev)
		return nil
	})
	return svc, mock, published
}

func validRequest() BookingRequest {
	return BookingRequest{
		Seat:           5,
		FirstName:      "Maria",
		LastName:       "Rossi",
		Phone:          "+39 333 1234567",
		DeparturePlace: "Torino",
		DepartureDate:  "2026-09-15",
		Destination:    "Lourdes",
		Capacity:       model.GT53,
	}
}

func TestAttemptBookValidationFailsFast(t *testing.T) {
	svc, mock, published := newBookingService(t)

	cases := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"no seat selected", func(r *BookingRequest) { r.Seat = 0 }},
		{"seat beyond capacity", func(r *BookingRequest) { r.Seat = 54 }},
		{"missing first name", func(r *BookingRequest) { r.FirstName = "  " }},
		{"missing phone", func(r *BookingRequest) { r.Phone = "" }},
		{"missing date", func(r *BookingRequest) { r.DepartureDate = "" }},
		{"malformed date", func(r *BookingRequest) { r.DepartureDate = "15/09/2026" }},
		{"missing destination", func(r *BookingRequest) { r.Destination = "" }},
		{"unknown bus type", func(r *BookingRequest) { r.Capacity = model.Capacity(40) }},
	}
	for _, c := range cases {
		req := validRequest()
		c.mutate(&req)
		_, err := svc.AttemptBook(context.Background(), req, nil)
		if !IsValidation(err) {
			t.Fatalf("%s: got %v, want ValidationError", c.name, err)
		}
	}
	// Validation must reject before any store call.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store traffic: %v", err)
	}
	if len(*published) != 0 {
		t.Fatalf("no events should be published on validation failure")
	}
}

func TestAttemptBookSnapshotPreCheck(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	idx := layout.BuildIndex(model.GT53, []model.Booking{{ID: 9, Seat: 5, BusType: "53"}})
	_, err := svc.AttemptBook(context.Background(), validRequest(), idx)
	if !errors.Is(err, repository.ErrSeatTaken) {
		t.Fatalf("got %v, want ErrSeatTaken from snapshot pre-check", err)
	}
	// The pre-check is local; no insert may have been attempted.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store traffic: %v", err)
	}
}

func TestAttemptBookSuccess(t *testing.T) {
	svc, mock, published := newBookingService(t)

	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	b, err := svc.AttemptBook(context.Background(), validRequest(), layout.BuildIndex(model.GT53, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 41 || b.Seat != 5 || b.BusType != "53" {
		t.Fatalf("booking not populated: %+v", b)
	}
	if b.Ref == "" {
		t.Fatalf("booking ref should be assigned")
	}
	if !b.CreatedAt.Equal(created) {
		t.Fatalf("created_at not queried back: %v", b.CreatedAt)
	}
	if len(*published) != 1 || (*published)[0].BookingID != 41 {
		t.Fatalf("booking.created event not published: %+v", *published)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAttemptBookLosesRace(t *testing.T) {
	svc, mock, published := newBookingService(t)

	// The snapshot predates the rival booking, so the pre-check passes
	// and the unique key on (seat, bus_type) decides.
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '5-53' for key 'uniq_seat_bus'"))

	_, err := svc.AttemptBook(context.Background(), validRequest(), layout.BuildIndex(model.GT53, nil))
	if !errors.Is(err, repository.ErrSeatTaken) {
		t.Fatalf("got %v, want ErrSeatTaken from the store", err)
	}
	if len(*published) != 0 {
		t.Fatalf("losing the race must not publish an event")
	}
}

func TestAttemptBookConflictProperty(t *testing.T) {
	// Two claims on the same seat against a store enforcing the unique
	// key: the store serializes them, exactly one insert commits.
	svc, mock, _ := newBookingService(t)

	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '5-53' for key 'uniq_seat_bus'"))

	// Both clients built their index from the same empty snapshot, so
	// both pass the optimistic pre-check.
	stale := layout.BuildIndex(model.GT53, nil)

	winner, err := svc.AttemptBook(context.Background(), validRequest(), stale)
	if err != nil {
		t.Fatalf("first claim should win: %v", err)
	}
	_, err = svc.AttemptBook(context.Background(), validRequest(), stale)
	if !errors.Is(err, repository.ErrSeatTaken) {
		t.Fatalf("second claim should lose with ErrSeatTaken, got %v", err)
	}
	if winner == nil || winner.Seat != 5 {
		t.Fatalf("exactly one stored booking expected, got %+v", winner)
	}
}

func TestAttemptBookStoreErrors(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(context.DeadlineExceeded)
	_, err := svc.AttemptBook(context.Background(), validRequest(), nil)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("deadline expiry should map to ErrTimeout, got %v", err)
	}

	mock.ExpectExec("INSERT INTO bookings").WillReturnError(errors.New("connection refused"))
	_, err = svc.AttemptBook(context.Background(), validRequest(), nil)
	if !errors.Is(err, ErrStore) {
		t.Fatalf("backend fault should map to ErrStore, got %v", err)
	}
}

func TestCancelRequiresPrivilege(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	if err := svc.Cancel(context.Background(), 7, auth.Session{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unprivileged cancel: got %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("forbidden cancel must not reach the store: %v", err)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectExec("DELETE FROM bookings").WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM bookings").WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // already gone

	if err := svc.Cancel(context.Background(), 7, auth.Admin()); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := svc.Cancel(context.Background(), 7, auth.Admin()); err != nil {
		t.Fatalf("second cancel of same id must also succeed: %v", err)
	}
}

func TestListBookings(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	depDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "ref", "seat", "first_name", "last_name", "phone",
		"departure_place", "departure_date", "destination", "bus_type", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM bookings").WithArgs("53").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "ref-1", 2, "Maria", "Rossi", "333", "Torino", depDate, "Lourdes", "53", time.Now()).
			AddRow(2, "ref-2", 5, "Luca", "Bianchi", "334", "Asti", depDate, "Lourdes", "53", time.Now()))

	out, err := svc.ListBookings(context.Background(), model.GT53)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 || out[0].Seat != 2 || out[1].Seat != 5 {
		t.Fatalf("unexpected list: %+v", out)
	}
	if out[0].DepartureDate != "2026-09-15" {
		t.Fatalf("departure_date should list as YYYY-MM-DD, got %q", out[0].DepartureDate)
	}
}

func TestBookedCountAndIsFull(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("SELECT COUNT").WithArgs("53").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(53))
	n, err := svc.BookedCount(context.Background(), model.GT53)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if !IsFull(model.GT53, n) {
		t.Fatalf("53 booked on a 53-seater should be full")
	}
	if IsFull(model.GT53, 52) {
		t.Fatalf("52 booked on a 53-seater should not be full")
	}
	if IsFull(model.GT63, 53) {
		t.Fatalf("53 booked on a 63-seater should not be full")
	}
}
