// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle models a shared vehicle (scooter or bike) which may be
// persisted in a database. The InUse flag may only be flipped by the
// checkout and checkin operations of the vehicles use case, never
// assigned directly by outer layers.
type Vehicle struct {
	ID          uuid.UUID `json:"id"`
	Battery     int       `json:"battery"`      // percent, within [0, 100]
	InUse       bool      `json:"in_use"`       // availability flag
	VehicleType string    `json:"vehicle_type"` // free-form tag, e.g. scooter
}

// VehicleWithLocation is a read projection which extends a Vehicle
// with its most recent location history record. It is produced by the
// vehicles listing query (joining each vehicle to the ledger entry
// with the maximum timestamp) and is never persisted as a row itself.
type VehicleWithLocation struct {
	Vehicle
	LastCheckin  time.Time  `json:"last_checkin"`
	LastLocation Coordinate `json:"last_location"`
}
