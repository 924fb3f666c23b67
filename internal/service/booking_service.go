package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/delgrossoviaggi/bus-booking/internal/auth"
	"github.com/delgrossoviaggi/bus-booking/internal/layout"
	"github.com/delgrossoviaggi/bus-booking/internal/model"
	"github.com/delgrossoviaggi/bus-booking/internal/queue"
	"github.com/delgrossoviaggi/bus-booking/internal/repository"
)

// defaultStoreTimeout bounds every record-store call so a stalled
// backend surfaces as ErrTimeout instead of hanging the request.
const defaultStoreTimeout = 5 * time.Second

// departureDateLayout is the wire format for travel dates.
const departureDateLayout = "2006-01-02"

// Publisher emits a booking-created event after a successful insert.
// Publishing is best effort and must never fail the booking.
type Publisher func(ctx context.Context, ev queue.BookingCreatedEvent) error

// BookingService is the reservation conflict resolver.  Each client
// session holds a possibly-stale snapshot of the reservation list; the
// service validates locally, pre-checks against that snapshot, and
// then lets the store's unique key on (seat, bus_type) decide the race.
// Exactly one of two concurrent claims on a seat wins; the loser
// observes ErrSeatTaken and must refresh its snapshot.
type BookingService struct {
	repo    *repository.BookingRepo
	publish Publisher // optional, nil disables events
	timeout time.Duration
}

// NewBookingService constructs a BookingService.  publish may be nil.
func NewBookingService(repo *repository.BookingRepo, publish Publisher) *BookingService {
	if repo == nil {
		panic("nil repository passed to NewBookingService")
	}
	return &BookingService{repo: repo, publish: publish, timeout: defaultStoreTimeout}
}

// BookingRequest carries the passenger-facing submit form.
type BookingRequest struct {
	Seat           int
	FirstName      string
	LastName       string
	Phone          string
	DeparturePlace string
	DepartureDate  string // YYYY-MM-DD
	Destination    string
	Capacity       model.Capacity
}

// validate rejects malformed input before any store call.
func (req *BookingRequest) validate() error {
	if !req.Capacity.Valid() {
		return &ValidationError{Field: "bus_type", Reason: "unknown coach type"}
	}
	if req.Seat < 1 {
		return &ValidationError{Field: "seat", Reason: "no seat selected"}
	}
	if req.Seat > req.Capacity.Seats() {
		return &ValidationError{Field: "seat", Reason: "seat outside coach layout"}
	}
	for _, f := range []struct{ name, val string }{
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
		{"phone", req.Phone},
		{"departure_place", req.DeparturePlace},
	} {
		if strings.TrimSpace(f.val) == "" {
			return &ValidationError{Field: f.name, Reason: "required"}
		}
	}
	if req.DepartureDate == "" {
		return &ValidationError{Field: "departure_date", Reason: "required"}
	}
	if _, err := time.Parse(departureDateLayout, req.DepartureDate); err != nil {
		return &ValidationError{Field: "departure_date", Reason: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(req.Destination) == "" {
		return &ValidationError{Field: "destination", Reason: "required"}
	}
	return nil
}

// AttemptBook tries to claim a seat.  idx is the caller's current
// snapshot index and may be nil when no snapshot is loaded; checking
// it first saves a round trip but is only a latency optimization.  The
// insert against the store is the true arbiter: two clients can both
// pass the snapshot check, and the unique key guarantees that only one
// insert commits.  On ErrSeatTaken (or any store error) the caller
// must refresh its snapshot before retrying.
func (s *BookingService) AttemptBook(ctx context.Context, req BookingRequest, idx *layout.Index) (*model.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if idx != nil && idx.IsBooked(req.Seat) {
		// Stale-snapshot fast path: the seat was already taken the
		// last time this client looked.
		return nil, repository.ErrSeatTaken
	}

	b := &model.Booking{
		Seat:           req.Seat,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Phone:          strings.TrimSpace(req.Phone),
		DeparturePlace: strings.TrimSpace(req.DeparturePlace),
		DepartureDate:  req.DepartureDate,
		Destination:    strings.TrimSpace(req.Destination),
		BusType:        req.Capacity.BusType(),
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Insert(sctx, b); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, repository.ErrSeatTaken
		}
		return nil, storeErr(err)
	}

	if s.publish != nil {
		ev := queue.BookingCreatedEvent{
			BookingID:      b.ID,
			Ref:            b.Ref,
			Seat:           b.Seat,
			Passenger:      b.FirstName + " " + b.LastName,
			Phone:          b.Phone,
			DeparturePlace: b.DeparturePlace,
			DepartureDate:  b.DepartureDate,
			Destination:    b.Destination,
			BusType:        b.BusType,
			CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := s.publish(ctx, ev); err != nil {
			log.Printf("booking-service: publish booking.created failed: %v", err)
		}
	}
	return b, nil
}

// ListBookings returns the authoritative reservation list for one
// coach type, ordered by seat.  Callers rebuild their index from the
// result after every mutation.
func (s *BookingService) ListBookings(ctx context.Context, capacity model.Capacity) ([]model.Booking, error) {
	if !capacity.Valid() {
		return nil, &ValidationError{Field: "bus_type", Reason: "unknown coach type"}
	}
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	out, err := s.repo.ListByBusType(sctx, capacity.BusType())
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Cancel deletes a booking by id.  Only privileged sessions may
// cancel.  Cancelling an id that no longer exists is a success so a
// double cancel stays quiet.  Callers refresh their snapshot after a
// successful cancel.
func (s *BookingService) Cancel(ctx context.Context, id uint64, sess auth.Session) error {
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

// BookedCount returns the number of stored bookings for the coach
// type, from the authoritative store.
func (s *BookingService) BookedCount(ctx context.Context, capacity model.Capacity) (int, error) {
	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.repo.CountByBusType(sctx, capacity.BusType())
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

// IsFull reports whether the coach has no free seats left.  Advisory:
// callers display it but AttemptBook does not hard-block on it, since
// the per-seat unique key already caps stored bookings at the
// capacity.
func IsFull(capacity model.Capacity, bookedCount int) bool {
	return bookedCount >= capacity.Seats()
}
