package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// BookingRepo is the authoritative, transactional record of which
// seats are sold on which trip.  The seat-conflict check and the
// booking insert execute inside one transaction that first locks the
// trip row, so two concurrent reservations for the same trip are
// serialized: exactly one can pass the conflict check before the other
// observes its writes.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Reserve atomically checks seat availability and persists the booking
// with its seat assignments.  On any failure nothing is written.  When
// one or more requested seats are already held by a confirmed booking
// on the trip, it returns model.ErrSeatConflict.  On success the
// generated booking id and timestamps are populated on b.
func (r *BookingRepo) Reserve(ctx context.Context, b *model.Booking, seats []model.BookedSeat) error {
	if len(seats) == 0 {
		return model.ErrEmptyPassengerList
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Serialize reservations per trip: every reserve transaction takes
	// the row lock on the trip before checking availability, making
	// check-then-insert indivisible with respect to this trip's seats.
	var lockedTrip uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM trips WHERE id = ? FOR UPDATE`, b.TripID).Scan(&lockedTrip)
	if err == sql.ErrNoRows {
		return model.ErrTripNotFound
	}
	if err != nil {
		return err
	}

	conflicts, err := confirmedSeatCountTx(ctx, tx, b.TripID, seatIDs(seats))
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return model.ErrSeatConflict
	}

	const ins = `INSERT INTO bookings
	             (booking_ref, trip_id, passenger_id, pickup_stop_id, drop_stop_id, amount_paid, status)
	             VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		b.BookingRef, b.TripID, b.PassengerID, b.PickupStopID, b.DropStopID, b.AmountPaid, model.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingStatusConfirmed

	if err := insertBookedSeatsTx(ctx, tx, b.ID, seats); err != nil {
		return err
	}

	// Read back DB-default timestamps so the caller sees the stored row.
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// confirmedSeatCountTx counts confirmed claims on any of the given
// seats for a trip.  Runs inside the caller's transaction, after the
// trip row lock has been taken.
func confirmedSeatCountTx(ctx context.Context, tx *sql.Tx, tripID uint64, ids []uint64) (int, error) {
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids)+2)
	args = append(args, tripID, model.BookingStatusConfirmed)
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT COUNT(*)
	      FROM booked_seats bs
	      JOIN bookings bk ON bk.id = bs.booking_id
	      WHERE bk.trip_id = ? AND bk.status = ? AND bs.seat_id IN (` + strings.Join(placeholders, ",") + `)`
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// insertBookedSeatsTx bulk-inserts the per-passenger seat rows.
func insertBookedSeatsTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seats []model.BookedSeat) error {
	q := `INSERT INTO booked_seats
	      (booking_id, seat_id, passenger_name, passenger_age, passenger_gender, seat_number) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	for i, s := range seats {
		if i > 0 {
			q += ","
		}
		q += "(?, ?, ?, ?, ?, ?)"
		args = append(args, bookingID, s.SeatID, s.PassengerName, s.PassengerAge, s.PassengerGender, s.SeatNumber)
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

func seatIDs(seats []model.BookedSeat) []uint64 {
	ids := make([]uint64, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.SeatID)
	}
	return ids
}

// BookingWithDeparture loads a booking together with its trip's
// departure time.  Missing bookings are reported as
// model.ErrBookingNotFound.
func (r *BookingRepo) BookingWithDeparture(ctx context.Context, bookingID uint64) (*model.Booking, time.Time, error) {
	const q = `SELECT b.id, b.booking_ref, b.trip_id, b.passenger_id, b.pickup_stop_id, b.drop_stop_id,
	                  b.amount_paid, b.status, b.created_at, b.updated_at, t.departure_time
	           FROM bookings b
	           JOIN trips t ON t.id = b.trip_id
	           WHERE b.id = ?`
	var b model.Booking
	var departure time.Time
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
		&b.ID, &b.BookingRef, &b.TripID, &b.PassengerID, &b.PickupStopID, &b.DropStopID,
		&b.AmountPaid, &b.Status, &b.CreatedAt, &b.UpdatedAt, &departure,
	)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, model.ErrBookingNotFound
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	return &b, departure.UTC(), nil
}

// MarkCancelled transitions a booking from CONFIRMED to CANCELLED.
// The guard is in the statement itself, so a concurrent cancel loses
// cleanly: zero affected rows means the booking was no longer
// CONFIRMED and model.ErrAlreadyCancelled is returned.  Bookings never
// transition back.
func (r *BookingRepo) MarkCancelled(ctx context.Context, bookingID uint64) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.BookingStatusCancelled, bookingID, model.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrAlreadyCancelled
	}
	return nil
}

// BookedSeatIDs returns the seats currently held by confirmed bookings
// on a trip, keyed by seat id.  This is the live availability read;
// it deliberately bypasses every cache.
func (r *BookingRepo) BookedSeatIDs(ctx context.Context, tripID uint64) (map[uint64]struct{}, error) {
	const q = `SELECT bs.seat_id
	           FROM booked_seats bs
	           JOIN bookings bk ON bk.id = bs.booking_id
	           WHERE bk.trip_id = ? AND bk.status = ?`
	rows, err := r.db.QueryContext(ctx, q, tripID, model.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	taken := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		taken[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// BookingDetail is a passenger-facing view of a booking with its trip
// and seat information, used by the listing endpoint.
type BookingDetail struct {
	ID            uint64    `json:"id"`
	BookingRef    string    `json:"booking_ref"`
	TripID        uint64    `json:"trip_id"`
	Status        string    `json:"status"`
	AmountPaid    int64     `json:"amount_paid"`
	PickupStop    string    `json:"pickup_stop"`
	DropStop      string    `json:"drop_stop"`
	DepartureTime time.Time `json:"departure_time"`
	CreatedAt     time.Time `json:"created_at"`
	Seats         []struct {
		SeatID        uint64 `json:"seat_id"`
		SeatNumber    string `json:"seat_number"`
		PassengerName string `json:"passenger_name"`
	} `json:"seats"`
}

// DetailsByPassenger returns all bookings made by a passenger, newest
// first, each with its seat assignments.  Seats for the whole page are
// fetched in one IN query.
func (r *BookingRepo) DetailsByPassenger(ctx context.Context, passengerID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.booking_ref, b.trip_id, b.status, b.amount_paid,
	                  p.name, d.name, t.departure_time, b.created_at
	           FROM bookings b
	           JOIN trips t ON t.id = b.trip_id
	           JOIN stops p ON p.id = b.pickup_stop_id
	           JOIN stops d ON d.id = b.drop_stop_id
	           WHERE b.passenger_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.BookingRef, &d.TripID, &d.Status, &d.AmountPaid,
			&d.PickupStop, &d.DropStop, &d.DepartureTime, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.DepartureTime = d.DepartureTime.UTC()
		d.Seats = []struct {
			SeatID        uint64 `json:"seat_id"`
			SeatNumber    string `json:"seat_number"`
			PassengerName string `json:"passenger_name"`
		}{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQ := `SELECT booking_id, seat_id, seat_number, passenger_name
	          FROM booked_seats
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, seat_number`
	srows, err := r.db.QueryContext(ctx, seatQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bid, sid uint64
		var num, name string
		if err := srows.Scan(&bid, &sid, &num, &name); err != nil {
			return nil, err
		}
		idx, ok := index[bid]
		if !ok {
			continue
		}
		details[idx].Seats = append(details[idx].Seats, struct {
			SeatID        uint64 `json:"seat_id"`
			SeatNumber    string `json:"seat_number"`
			PassengerName string `json:"passenger_name"`
		}{SeatID: sid, SeatNumber: num, PassengerName: name})
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
