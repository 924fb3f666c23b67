// Package layout derives the seat grid of a coach from its capacity
// and reconciles that grid against the reservation list.  Everything
// here is pure: the grid is recomputed whenever the capacity changes
// and the index is rebuilt from the full booking list after every load
// or mutation, so displayed availability never drifts from the last
// fetched snapshot.
package layout

import (
	"strconv"

	"github.com/delgrossoviaggi/bus-booking/internal/model"
)

// Generate returns the seat grid for a coach with the given number of
// seats.  Ids are assigned 1..capacity front to back, four per row;
// the final row is padded with empty slots when the capacity is not a
// multiple of four.  Deterministic and total: capacity 0 (or less)
// yields an empty grid.
func Generate(capacity int) model.Grid {
	if capacity <= 0 {
		return model.Grid{}
	}
	rows := (capacity + model.RowWidth - 1) / model.RowWidth
	grid := make(model.Grid, rows)
	n := 1
	for r := 0; r < rows; r++ {
		for s := 0; s < model.RowWidth && n <= capacity; s++ {
			grid[r][s] = &model.Seat{ID: n, Label: strconv.Itoa(n)}
			n++
		}
	}
	return grid
}
