package model

// StopRole describes how a stop may be used along a path.  Boarding
// stops accept pickups, dropping stops accept drop-offs, and Both
// accepts either.
type StopRole string

const (
	StopRoleBoarding StopRole = "BOARDING"
	StopRoleDropping StopRole = "DROPPING"
	StopRoleBoth     StopRole = "BOTH"
)

// Stop is one entry in the ordered ledger of stops along a path.  The
// order index is unique per path and strictly increasing along the
// route; the base price encodes the cumulative fare position of the
// stop so that a route fare can be derived from the difference of two
// stops.  Stops are immutable once a trip sells seats against them and
// are read-only to this service.
//
// Fields:
//  ID         – primary key identifier.
//  PathID     – path this stop belongs to.
//  Name       – human readable stop/city name.
//  OrderIndex – position along the path, strictly increasing.
//  BasePrice  – fare position of the stop in whole currency units.
//  Role       – whether the stop boards, drops, or both.
type Stop struct {
	ID         uint64   // stops.id
	PathID     uint64   // stops.path_id
	Name       string   // stops.name
	OrderIndex uint32   // stops.order_index
	BasePrice  int64    // stops.base_price
	Role       StopRole // stops.stop_role
}

// Boards reports whether passengers may board at this stop.
func (s *Stop) Boards() bool {
	return s.Role == StopRoleBoarding || s.Role == StopRoleBoth
}

// Drops reports whether passengers may alight at this stop.
func (s *Stop) Drops() bool {
	return s.Role == StopRoleDropping || s.Role == StopRoleBoth
}
