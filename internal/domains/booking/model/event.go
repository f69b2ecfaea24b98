package model

import "time"

const (
	EventCreated    = "created"
	EventCheckedIn  = "checked_in"
	EventCheckedOut = "checked_out"
	EventUpdated    = "updated"
	EventDeleted    = "deleted"
)

// Event is published to the booking topic, keyed by room id so one room's history stays ordered.
type Event struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"bookingId"`
	RoomID        string    `json:"roomId"`
	GuestID       string    `json:"guestId"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewEvent(eventType string, booking Booking, at time.Time) Event {
	return Event{
		Type:          eventType,
		BookingID:     booking.ID,
		RoomID:        booking.RoomID,
		GuestID:       booking.GuestID,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		OccurredAt:    at,
	}
}
