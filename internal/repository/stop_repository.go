// Package repository contains the MySQL data access layer.  Every
// query is parameterized; multi-statement work runs inside explicit
// transactions owned by the caller-facing method.  All timestamps are
// stored and compared in UTC.
package repository

import (
	"context"
	"database/sql"

	"github.com/Preethinthran/TravelPoint-sub000/internal/model"
)

// StopRepo reads the stop ledger: the ordered, priced stops of each
// path.  The ledger is written by the route-management collaborator and
// is strictly read-only here.
type StopRepo struct {
	db *sql.DB
}

// NewStopRepo returns a StopRepo bound to the given database.
func NewStopRepo(db *sql.DB) *StopRepo { return &StopRepo{db: db} }

// StopsByPath returns every stop on a path ordered by position along
// the route.  An unknown path yields an empty slice, not an error.
func (r *StopRepo) StopsByPath(ctx context.Context, pathID uint64) ([]model.Stop, error) {
	const q = `SELECT id, path_id, name, order_index, base_price, stop_role
	           FROM stops WHERE path_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, q, pathID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stops := make([]model.Stop, 0, 16)
	for rows.Next() {
		var s model.Stop
		if err := rows.Scan(&s.ID, &s.PathID, &s.Name, &s.OrderIndex, &s.BasePrice, &s.Role); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stops, nil
}

// StopByID loads a single stop.  A missing stop is reported as
// model.ErrInvalidStops, which is the classification every caller of
// this method wants.
func (r *StopRepo) StopByID(ctx context.Context, stopID uint64) (*model.Stop, error) {
	const q = `SELECT id, path_id, name, order_index, base_price, stop_role
	           FROM stops WHERE id = ?`
	var s model.Stop
	err := r.db.QueryRowContext(ctx, q, stopID).Scan(&s.ID, &s.PathID, &s.Name, &s.OrderIndex, &s.BasePrice, &s.Role)
	if err == sql.ErrNoRows {
		return nil, model.ErrInvalidStops
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
