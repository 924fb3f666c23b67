package model

import "time"

// Trip is a travel destination offered as a booking option.  Trips are
// managed only by privileged sessions.  Names need not be unique;
// bookings copy the name as free text at creation time.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – destination name shown to passengers.
//  Date      – optional travel date (YYYY-MM-DD); nil when open-ended.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Trip struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Date      *string   `json:"date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
