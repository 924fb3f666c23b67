package model

import "time"

// Booking records one passenger's claim on one seat of one coach type.
// Bookings are created by the passenger-facing submit flow, deleted
// only by a privileged session and never updated in place.  For a
// fixed BusType all stored Seat values are pairwise distinct; the
// database enforces this with a unique key on (seat, bus_type).
//
// Fields:
//  ID             – primary key assigned by the store.
//  Ref            – public reference (UUID) handed to the passenger.
//  Seat           – 1-based seat number, <= the capacity's seat count.
//  FirstName      – passenger first name.
//  LastName       – passenger last name.
//  Phone          – passenger contact number.
//  DeparturePlace – boarding point free text.
//  DepartureDate  – calendar date of travel (YYYY-MM-DD).
//  Destination    – trip name copied at creation time.  Soft reference:
//                   renaming or removing the Trip later does not touch it.
//  BusType        – capacity discriminator ("53", "63").
//  CreatedAt      – creation timestamp, UTC.
type Booking struct {
	ID             uint64    `json:"id"`
	Ref            string    `json:"ref"`
	Seat           int       `json:"seat"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          string    `json:"phone"`
	DeparturePlace string    `json:"departure_place"`
	DepartureDate  string    `json:"departure_date"`
	Destination    string    `json:"destination"`
	BusType        string    `json:"bus_type"`
	CreatedAt      time.Time `json:"created_at"`
}
