package booking

import (
	"context"
	"time"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// Refund tiers keyed by hours remaining until departure.  Boundaries
// are strict: exactly 24 hours left already falls into the half-refund
// tier, exactly 12 into the no-refund tier.
const (
	fullRefundHours = 24
	halfRefundHours = 12
)

// CancelStore is the slice of the booking store the cancellation
// engine needs: a read joined to the trip departure, and the guarded
// status transition.
type CancelStore interface {
	BookingWithDeparture(ctx context.Context, bookingID uint64) (*model.Booking, time.Time, error)
	MarkCancelled(ctx context.Context, bookingID uint64) error
}

// RefundQuote reports the outcome of a cancellation.  The status
// transition is the only durable side effect; disbursing the refund is
// the payment collaborator's job.
type RefundQuote struct {
	BookingID     uint64
	BookingRef    string
	RefundPercent int
	RefundAmount  int64
}

// CancellationEngine computes time-tiered refunds and drives the
// monotonic Confirmed → Cancelled transition.
type CancellationEngine struct {
	store CancelStore
	now   func() time.Time // overridden in tests
}

// NewCancellationEngine returns an engine over the given store.
func NewCancellationEngine(store CancelStore) *CancellationEngine {
	return &CancellationEngine{store: store, now: time.Now}
}

// Cancel cancels a booking on behalf of requesting passenger.  The
// ordering of checks is part of the contract: ownership is verified
// before status, so a foreign passenger probing a cancelled booking
// learns nothing beyond "forbidden".  Cancelling twice yields
// model.ErrAlreadyCancelled the second time, not a silent no-op.
func (e *CancellationEngine) Cancel(ctx context.Context, bookingID, passengerID uint64) (*RefundQuote, error) {
	b, departure, err := e.store.BookingWithDeparture(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.PassengerID != passengerID {
		return nil, model.ErrForbidden
	}
	if b.Status == model.BookingStatusCancelled {
		return nil, model.ErrAlreadyCancelled
	}

	now := e.now().UTC()
	if !now.Before(departure) {
		return nil, model.ErrTripAlreadyStarted
	}

	hoursLeft := departure.Sub(now).Hours()
	percent := 0
	switch {
	case hoursLeft > fullRefundHours:
		percent = 100
	case hoursLeft > halfRefundHours:
		percent = 50
	}
	refund := b.AmountPaid * int64(percent) / 100

	// The store enforces the transition guard; a concurrent cancel that
	// got there first surfaces here as ErrAlreadyCancelled.
	if err := e.store.MarkCancelled(ctx, bookingID); err != nil {
		return nil, err
	}

	return &RefundQuote{
		BookingID:     b.ID,
		BookingRef:    b.BookingRef,
		RefundPercent: percent,
		RefundAmount:  refund,
	}, nil
}
