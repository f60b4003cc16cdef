package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// SeatRepo reads seat master data.  Seats are static per bus and
// read-only to the reservation core.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo returns a SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// SeatsByBus returns all seats installed on a bus, ordered by seat
// number for deterministic layouts.
func (r *SeatRepo) SeatsByBus(ctx context.Context, busID uint64) ([]model.Seat, error) {
	const q = `SELECT id, bus_id, seat_number, seat_class, base_price
	           FROM seats WHERE bus_id = ? ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, busID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0, 40)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.BusID, &s.SeatNumber, &s.SeatClass, &s.BasePrice); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatsByIDs loads the requested seats of one bus keyed by seat id.
// Seats missing from the result are either unknown or belong to a
// different bus; the caller decides what that means (for reservations
// it means the seat has no price on this trip).
func (r *SeatRepo) SeatsByIDs(ctx context.Context, busID uint64, seatIDs []uint64) (map[uint64]model.Seat, error) {
	if len(seatIDs) == 0 {
		return map[uint64]model.Seat{}, nil
	}
	placeholders := make([]string, 0, len(seatIDs))
	args := make([]interface{}, 0, len(seatIDs)+1)
	args = append(args, busID)
	for _, id := range seatIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT id, bus_id, seat_number, seat_class, base_price
	      FROM seats WHERE bus_id = ? AND id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64]model.Seat, len(seatIDs))
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.BusID, &s.SeatNumber, &s.SeatClass, &s.BasePrice); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
