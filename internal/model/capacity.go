package model

import "strconv"

// Capacity selects one of the fixed coach layouts the operator runs.
// The numeric value doubles as the seat count and as the admission
// ceiling for bookings of that coach type.  The database stores it as
// the string bus_type discriminator ("53", "63").
type Capacity int

const (
	GT53 Capacity = 53 // 53-seat GT coach
	GT63 Capacity = 63 // 63-seat GT coach
)

// Capacities lists every coach layout the operator offers, in menu
// order.  Extending the fleet means adding a value here; everything
// downstream (layout, counting, fullness) derives from it.
var Capacities = []Capacity{GT53, GT63}

// ParseCapacity converts the bus_type discriminator into a Capacity.
// It returns false for any value outside the closed set.
func ParseCapacity(s string) (Capacity, bool) {
	for _, c := range Capacities {
		if c.BusType() == s {
			return c, true
		}
	}
	return 0, false
}

// Valid reports whether c is one of the offered layouts.
func (c Capacity) Valid() bool {
	for _, v := range Capacities {
		if c == v {
			return true
		}
	}
	return false
}

// Seats returns the number of seats in a coach of this capacity.
func (c Capacity) Seats() int { return int(c) }

// BusType returns the string discriminator stored in the bookings
// table ("53", "63").
func (c Capacity) BusType() string { return strconv.Itoa(int(c)) }
