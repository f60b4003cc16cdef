// Package queue defines message payloads exchanged over the message
// broker and the background consumer that audits them.
package queue

// TicketConfirmedEvent is published after a reservation commits.  It
// carries enough for downstream consumers (notifications, analytics,
// the audit log) to act without querying the primary database.
type TicketConfirmedEvent struct {
	BookingID   uint64   `json:"booking_id"`
	BookingRef  string   `json:"booking_ref"`
	TripID      uint64   `json:"trip_id"`
	PassengerID uint64   `json:"passenger_id"`
	PickupStop  string   `json:"pickup_stop"`
	DropStop    string   `json:"drop_stop"`
	SeatNumbers []string `json:"seats"`
	TotalAmount int64    `json:"total_amount"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// TicketCancelledEvent is published after a booking transitions to
// CANCELLED.  Refund disbursement is driven off this event by the
// payment collaborator.
type TicketCancelledEvent struct {
	BookingID     uint64 `json:"booking_id"`
	BookingRef    string `json:"booking_ref"`
	PassengerID   uint64 `json:"passenger_id"`
	RefundPercent int    `json:"refund_percent"`
	RefundAmount  int64  `json:"refund_amount"`
	CancelledAt   string `json:"cancelled_at"`
}
