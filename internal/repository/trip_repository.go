package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// TripRepo reads trip schedules.  Trips are created by the scheduling
// collaborator; the reservation core never writes them.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo returns a TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

// TripByID loads a trip.  Missing trips are reported as
// model.ErrTripNotFound.
func (r *TripRepo) TripByID(ctx context.Context, tripID uint64) (*model.Trip, error) {
	const q = `SELECT id, bus_id, path_id, departure_time, arrival_time, status
	           FROM trips WHERE id = ?`
	var t model.Trip
	err := r.db.QueryRowContext(ctx, q, tripID).Scan(
		&t.ID, &t.BusID, &t.PathID, &t.DepartureTime, &t.ArrivalTime, &t.Status,
	)
	if err == sql.ErrNoRows {
		return nil, model.ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	t.DepartureTime = t.DepartureTime.UTC()
	t.ArrivalTime = t.ArrivalTime.UTC()
	return &t, nil
}

// TripSummary is one row of a trip search result: a scheduled trip
// whose path serves both searched endpoints in travel order.
type TripSummary struct {
	TripID        uint64    `json:"trip_id"`
	BusID         uint64    `json:"bus_id"`
	PathID        uint64    `json:"path_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	FromStopID    uint64    `json:"from_stop_id"`
	ToStopID      uint64    `json:"to_stop_id"`
	FromStop      string    `json:"from_stop"`
	ToStop        string    `json:"to_stop"`
}

// Search finds scheduled trips departing on the given day (UTC) whose
// path has a boarding stop matching from strictly before a dropping
// stop matching to.  Matching is a case-insensitive substring match on
// the stop name.
func (r *TripRepo) Search(ctx context.Context, from, to string, day time.Time) ([]TripSummary, error) {
	const q = `SELECT t.id, t.bus_id, t.path_id, t.departure_time, t.arrival_time,
	                  p.id, d.id, p.name, d.name
	           FROM trips t
	           JOIN stops p ON p.path_id = t.path_id
	           JOIN stops d ON d.path_id = t.path_id
	           WHERE t.status = 'SCHEDULED'
	             AND t.departure_time >= ? AND t.departure_time < ?
	             AND LOWER(p.name) LIKE CONCAT('%', LOWER(?), '%')
	             AND LOWER(d.name) LIKE CONCAT('%', LOWER(?), '%')
	             AND p.stop_role IN ('BOARDING', 'BOTH')
	             AND d.stop_role IN ('DROPPING', 'BOTH')
	             AND p.order_index < d.order_index
	           ORDER BY t.departure_time`
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	rows, err := r.db.QueryContext(ctx, q,
		dayStart.Format("2006-01-02 15:04:05"), dayEnd.Format("2006-01-02 15:04:05"), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := make([]TripSummary, 0, 8)
	for rows.Next() {
		var s TripSummary
		if err := rows.Scan(&s.TripID, &s.BusID, &s.PathID, &s.DepartureTime, &s.ArrivalTime,
			&s.FromStopID, &s.ToStopID, &s.FromStop, &s.ToStop); err != nil {
			return nil, err
		}
		s.DepartureTime = s.DepartureTime.UTC()
		s.ArrivalTime = s.ArrivalTime.UTC()
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
