// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// BookingCreatedEvent is published after a booking insert commits.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingCreatedEvent struct {
	BookingID      uint64 `json:"booking_id"`
	Ref            string `json:"ref"`
	Seat           int    `json:"seat"`
	Passenger      string `json:"passenger"`
	Phone          string `json:"phone"`
	DeparturePlace string `json:"departure_place"`
	DepartureDate  string `json:"departure_date"`
	Destination    string `json:"destination"`
	BusType        string `json:"bus_type"`
	CreatedAt      string `json:"created_at"`
}
