package layout

import "github.com/delgrossoviaggi/bus-booking/internal/model"

// Index is an in-memory view over a reservation list snapshot giving
// O(1) seat occupancy lookups.  It is a read-through cache of the
// authoritative store, never patched incrementally: callers rebuild it
// from a fresh fetch after every mutation.
type Index struct {
	capacity model.Capacity
	bySeat   map[int]model.Booking
}

// BuildIndex constructs an index for the displayed capacity.  Bookings
// whose bus type does not match the capacity are ignored, so a 63-seat
// snapshot never marks seats on the 53-seat map.  Out-of-range seat
// numbers are dropped for the same reason.
func BuildIndex(capacity model.Capacity, bookings []model.Booking) *Index {
	idx := &Index{
		capacity: capacity,
		bySeat:   make(map[int]model.Booking, len(bookings)),
	}
	for _, b := range bookings {
		if b.BusType != capacity.BusType() {
			continue
		}
		if b.Seat < 1 || b.Seat > capacity.Seats() {
			continue
		}
		idx.bySeat[b.Seat] = b
	}
	return idx
}

// Capacity returns the coach layout this index was built for.
func (ix *Index) Capacity() model.Capacity { return ix.capacity }

// Booked returns the number of seats claimed in the snapshot.
func (ix *Index) Booked() int { return len(ix.bySeat) }

// IsBooked reports whether the seat is claimed in the snapshot.
func (ix *Index) IsBooked(seatID int) bool {
	_, ok := ix.bySeat[seatID]
	return ok
}

// ForSeat returns the booking occupying the seat, if any.
func (ix *Index) ForSeat(seatID int) (model.Booking, bool) {
	b, ok := ix.bySeat[seatID]
	return b, ok
}

// Classify returns the rendering status of a seat given the caller's
// current selection.  Booked wins over selected: a seat that was
// claimed since the caller picked it renders as booked.
func (ix *Index) Classify(seatID, selectedID int) model.SeatStatus {
	if ix.IsBooked(seatID) {
		return model.SeatBooked
	}
	if seatID == selectedID {
		return model.SeatSelected
	}
	return model.SeatFree
}
