// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Ride associates a user and a vehicle for the duration of one ride.
// EndTime is nil while the ride is active; at most one ride per
// (vehicle, user) pair may be active at a time under correct operation.
// StartTime is the authoritative source for the user-facing ride
// duration, even if the vehicle's location ledger received extra
// writes outside of the ride flow.
type Ride struct {
	ID        uuid.UUID  `json:"id"`
	VehicleID uuid.UUID  `json:"vehicle_id"`
	UserEmail string     `json:"user_email"`
	StartTime time.Time  `json:"start_ts"`
	EndTime   *time.Time `json:"end_ts,omitempty"`
}

// Active reports whether the ride is still open, that is, it has not
// been ended by a checkin yet.
func (r *Ride) Active() bool {
	return r.EndTime == nil
}

// RideResult carries the derived metrics of a completed ride. It is
// computed from two (location, timestamp) pairs and returned to the
// caller; it is never persisted.
type RideResult struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	AverageSpeedKmH float64 `json:"average_speed_kmh"`
}
