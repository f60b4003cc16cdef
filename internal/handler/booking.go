package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Preethinthran/TravelPoint-sub000/internal/booking"
	"github.com/Preethinthran/TravelPoint-sub000/internal/queue"
	"github.com/Preethinthran/TravelPoint-sub000/internal/repository"
	queue_publisher "github.com/Preethinthran/TravelPoint-sub000/internal/service"
)

// BookingHandler owns the passenger-facing booking lifecycle: reserve,
// list, cancel.  Ticket events are published after the database commit;
// a broker outage degrades the audit trail, never the booking.
type BookingHandler struct {
	Reserver  *booking.Transactor
	Canceller *booking.CancellationEngine
	Bookings  *repository.BookingRepo
}

func NewBookingHandler(reserver *booking.Transactor, canceller *booking.CancellationEngine, bookings *repository.BookingRepo) *BookingHandler {
	if reserver == nil || canceller == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Reserver: reserver, Canceller: canceller, Bookings: bookings}
}

type passengerPayload struct {
	SeatID uint64 `json:"seat_id" validate:"required"`
	Name   string `json:"name" validate:"required,max=100"`
	Age    uint8  `json:"age" validate:"required,lte=120"`
	Gender string `json:"gender" validate:"required,oneof=M F O"`
}

type reservePayload struct {
	PickupStopID uint64             `json:"pickup_stop_id" validate:"required"`
	DropStopID   uint64             `json:"drop_stop_id" validate:"required"`
	Passengers   []passengerPayload `json:"passengers" validate:"required,min=1,max=6,dive"`
}

// Reserve handles POST /v1/trips/:id/reserve.  The whole request
// either books every listed seat or books nothing.
func (h *BookingHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tripID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}

	var body reservePayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pickup_stop_id, drop_stop_id and 1-6 passengers with seat, name, age and gender (M/F/O) are required"})
	}

	passengers := make([]booking.Passenger, 0, len(body.Passengers))
	for _, p := range body.Passengers {
		passengers = append(passengers, booking.Passenger{
			SeatID: p.SeatID,
			Name:   p.Name,
			Age:    p.Age,
			Gender: p.Gender,
		})
	}

	receipt, err := h.Reserver.Reserve(c.Request().Context(), tripID, userID, body.PickupStopID, body.DropStopID, passengers)
	if err != nil {
		return domainError(c, err)
	}

	// Commit happened; the event is best-effort from here.
	event := queue.TicketConfirmedEvent{
		BookingID:   receipt.BookingID,
		BookingRef:  receipt.BookingRef,
		TripID:      tripID,
		PassengerID: userID,
		PickupStop:  receipt.PickupStop,
		DropStop:    receipt.DropStop,
		SeatNumbers: receipt.SeatNumbers,
		TotalAmount: receipt.TotalAmount,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishTicketConfirmed(context.Background(), event); err != nil {
		c.Logger().Errorf("publish ticket.confirmed for booking %d: %v", receipt.BookingID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":   receipt.BookingID,
		"booking_ref":  receipt.BookingRef,
		"total_amount": receipt.TotalAmount,
		"pickup_stop":  receipt.PickupStop,
		"drop_stop":    receipt.DropStop,
		"seats":        receipt.SeatNumbers,
		"status":       "CONFIRMED",
	})
}

// MyBookings handles GET /v1/my-bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Bookings.DetailsByPassenger(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		details = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": details})
}

// Cancel handles DELETE /v1/bookings/:id and reports the refund tier
// the passenger landed in.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	refund, err := h.Canceller.Cancel(c.Request().Context(), bookingID, userID)
	if err != nil {
		return domainError(c, err)
	}

	event := queue.TicketCancelledEvent{
		BookingID:     refund.BookingID,
		BookingRef:    refund.BookingRef,
		PassengerID:   userID,
		RefundPercent: refund.RefundPercent,
		RefundAmount:  refund.RefundAmount,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishTicketCancelled(context.Background(), event); err != nil {
		c.Logger().Errorf("publish ticket.cancelled for booking %d: %v", refund.BookingID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"booking_id":     refund.BookingID,
		"booking_ref":    refund.BookingRef,
		"status":         "CANCELLED",
		"refund_percent": refund.RefundPercent,
		"refund_amount":  refund.RefundAmount,
	})
}
