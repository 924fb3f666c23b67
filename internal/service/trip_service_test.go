package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/delgrossoviaggi/bus-booking/internal/auth"
	"github.com/delgrossoviaggi/bus-booking/internal/repository"
)

func newTripService(t *testing.T) (*TripService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTripService(repository.NewTripRepo(db)), mock
}

func TestTripMutationsRequirePrivilege(t *testing.T) {
	svc, mock := newTripService(t)
	ctx := context.Background()
	guest := auth.Session{}

	if _, err := svc.Create(ctx, guest, "Lourdes", nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("create: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Update(ctx, guest, 1, "Lourdes", nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, guest, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete: got %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("forbidden mutations must not reach the store: %v", err)
	}
}

func TestTripCreateValidation(t *testing.T) {
	svc, _ := newTripService(t)

	if _, err := svc.Create(context.Background(), auth.Admin(), "  ", nil); !IsValidation(err) {
		t.Fatalf("empty name: got %v, want ValidationError", err)
	}
	bad := "next month"
	if _, err := svc.Create(context.Background(), auth.Admin(), "Lourdes", &bad); !IsValidation(err) {
		t.Fatalf("malformed date: got %v, want ValidationError", err)
	}
}

func TestTripCreate(t *testing.T) {
	svc, mock := newTripService(t)

	now := time.Now()
	date := "2026-10-01"
	mock.ExpectExec("INSERT INTO trips").WithArgs("Lourdes", date).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date", "created_at", "updated_at"}).
			AddRow(3, "Lourdes", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), now, now))

	trip, err := svc.Create(context.Background(), auth.Admin(), "Lourdes", &date)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if trip.ID != 3 || trip.Name != "Lourdes" || trip.Date == nil || *trip.Date != date {
		t.Fatalf("unexpected trip: %+v", trip)
	}
}

func TestTripUpdateMissingID(t *testing.T) {
	svc, mock := newTripService(t)

	mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Update(context.Background(), auth.Admin(), 99, "Lourdes", nil)
	if !errors.Is(err, repository.ErrTripNotFound) {
		t.Fatalf("got %v, want ErrTripNotFound", err)
	}
}

func TestTripDeleteIsIdempotent(t *testing.T) {
	svc, mock := newTripService(t)

	mock.ExpectExec("DELETE FROM trips").WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // id never existed

	if err := svc.Delete(context.Background(), auth.Admin(), 5); err != nil {
		t.Fatalf("deleting an absent trip should succeed: %v", err)
	}
}

func TestTripListDatelessLast(t *testing.T) {
	svc, mock := newTripService(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date", "created_at", "updated_at"}).
			AddRow(2, "Lourdes", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), now, now).
			AddRow(1, "Gita sociale", nil, now, now))

	trips, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("got %d trips", len(trips))
	}
	if trips[0].Date == nil || *trips[0].Date != "2026-10-01" {
		t.Fatalf("dated trip should come first: %+v", trips[0])
	}
	if trips[1].Date != nil {
		t.Fatalf("dateless trip should have nil date: %+v", trips[1])
	}
}
