package model

// RowWidth is the number of slots in a physical coach row: two seats,
// the aisle, then two seats.  The aisle itself is not a slot; padding
// slots only appear in the final row when the capacity is not a
// multiple of four.
const RowWidth = 4

// Seat describes a single numbered seat in a coach.  Seats are derived
// from the capacity, never stored, and never mutated; identity is ID.
//
// Fields:
//  ID    – 1-based seat number.
//  Label – display string, conventionally the number as text.
type Seat struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Row is one front-to-back row of the coach.  A nil entry is an empty
// padding slot in the final row.  Slot order is left pair, aisle,
// right pair.
type Row [RowWidth]*Seat

// Grid is the ordered front-to-back sequence of rows for a coach.
type Grid []Row

// SeatCount returns the number of non-empty slots in the grid.
func (g Grid) SeatCount() int {
	n := 0
	for _, row := range g {
		for _, s := range row {
			if s != nil {
				n++
			}
		}
	}
	return n
}

// SeatStatus classifies a seat for rendering.
type SeatStatus string

const (
	SeatFree     SeatStatus = "FREE"     // not booked, not selected
	SeatSelected SeatStatus = "SELECTED" // the caller's current pick
	SeatBooked   SeatStatus = "BOOKED"   // claimed by a stored booking
)
