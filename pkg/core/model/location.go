package model

import (
	"time"

	"github.com/google/uuid"
)

// LocationRecord is one immutable entry of a vehicle's location
// history ledger. Records are append-only; once written they are never
// updated or deleted (except when their owning vehicle row is removed
// and the store cascades). Timestamps are expected to be non-decreasing
// per vehicle in practice, but that ordering is not enforced here.
type LocationRecord struct {
	ID         uuid.UUID  `json:"id"`
	VehicleID  uuid.UUID  `json:"vehicle_id"`
	Coordinate Coordinate `json:"coordinate"`
	Timestamp  time.Time  `json:"ts"`
}
