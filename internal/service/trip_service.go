package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/delgrossoviaggi/bus-booking/internal/auth"
	"github.com/delgrossoviaggi/bus-booking/internal/model"
	"github.com/delgrossoviaggi/bus-booking/internal/repository"
)

// TripService manages the destination catalog.  Listing is public;
// every mutation requires a privileged session.  Names are free text
// and deliberately not unique, and bookings keep whatever name they
// copied at creation time regardless of later edits here.
type TripService struct {
	repo    *repository.TripRepo
	timeout time.Duration
}

// NewTripService constructs a TripService.
func NewTripService(repo *repository.TripRepo) *TripService {
	if repo == nil {
		panic("nil repository passed to NewTripService")
	}
	return &TripService{repo: repo, timeout: defaultStoreTimeout}
}

// List returns the catalog ordered by date ascending, trips without a
// date last.
func (s *TripService) List(ctx context.Context) ([]model.Trip, error) {
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	out, err := s.repo.List(sctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Create adds a destination.  The date is optional.
func (s *TripService) Create(ctx context.Context, sess auth.Session, name string, date *string) (*model.Trip, error) {
	if !sess.Privileged {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if err := validateTripDate(date); err != nil {
		return nil, err
	}
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	t, err := s.repo.Create(sctx, name, date)
	if err != nil {
		return nil, storeErr(err)
	}
	return t, nil
}

// Update renames and/or re-dates a destination.  Returns
// repository.ErrTripNotFound when the id does not exist.
func (s *TripService) Update(ctx context.Context, sess auth.Session, id uint64, name string, date *string) (*model.Trip, error) {
	if !sess.Privileged {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if err := validateTripDate(date); err != nil {
		return nil, err
	}
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	t, err := s.repo.Update(sctx, id, name, date)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, repository.ErrTripNotFound
		}
		return nil, storeErr(err)
	}
	return t, nil
}

// Delete removes a destination.  Absent ids are a success.
func (s *TripService) Delete(ctx context.Context, sess auth.Session, id uint64) error {
	if !sess.Privileged {
		return ErrForbidden
	}
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Delete(sctx, id); err != nil {
		return storeErr(err)
	}
	return nil
}

func validateTripDate(date *string) error {
	if date == nil || *date == "" {
		return nil
	}
	if _, err := time.Parse(departureDateLayout, *date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}
