// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehicleuc contains the vehicles use case: the state machine
// which owns each vehicle's availability flag and battery level,
// enforces checkout/checkin legality, and keeps the location history
// ledger in sync with every transition.
//
// The state machine has exactly two states, available and in-use.
// Checkout moves a vehicle from available to in-use and checkin moves
// it back; no other transition exists. Every state-changing operation
// runs as one SERIALIZABLE transaction, so concurrent checkouts of the
// same vehicle cannot both succeed (the loser observes either a state
// conflict or a transient serialization failure).
//
// This layer trusts pre-validated input: battery levels and
// coordinates must be range-checked by the caller's validation layer
// (the REST adapter binds them with validator tags) and are not
// re-checked here.
package vehicleuc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/core/cerr"
	"github.com/movrlab/vsweb/pkg/core/log"
	"github.com/movrlab/vsweb/pkg/core/model"
	"github.com/movrlab/vsweb/pkg/core/repo"
	"github.com/movrlab/vsweb/pkg/core/trip"
)

// UseCase represents the vehicles use case. It holds a database
// connection pool and the vehicles and locations repository instances
// (to be guided with the DB pool), plus the use case specific settings.
type UseCase struct {
	pool      repo.Pool
	vehicles  repo.Vehicles
	locations repo.Locations

	defaultPageSize int
}

// New instantiates a vehicles use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, v repo.Vehicles, l repo.Locations, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, vehicles: v, locations: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.defaultPageSize == 0 {
		uc.defaultPageSize = 20
	}
	return uc, nil
}

// Register creates a vehicle in the available state and atomically
// appends its initial ledger entry at the given coordinates, stamped
// with the current UTC time. Battery must be pre-validated to lie
// within [0, 100].
func (uc *UseCase) Register(
	ctx context.Context, c model.Coordinate, battery int, vehicleType string,
) (v *model.Vehicle, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			v = &model.Vehicle{
				ID:          uuid.New(),
				Battery:     battery,
				InUse:       false,
				VehicleType: vehicleType,
			}
			if err := uc.vehicles.Tx(tx).Create(ctx, v); err != nil {
				return fmt.Errorf("creating vehicle: %w", err)
			}
			rec := &model.LocationRecord{
				ID:         uuid.New(),
				VehicleID:  v.ID,
				Coordinate: c,
				Timestamp:  time.Now().UTC(),
			}
			if err := uc.locations.Tx(tx).Append(ctx, rec); err != nil {
				return fmt.Errorf("seeding location history: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "registered vehicle", log.ID("vehicle_id", v.ID))
	return v, nil
}

// Remove deletes a vehicle which is not in use. The retention policy of
// its ledger and ride history is a storage concern (the ledger rows
// cascade with the vehicle, rides are kept).
func (uc *UseCase) Remove(ctx context.Context, vehicleID uuid.UUID) error {
	return uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.vehicles.Tx(tx)
			v, err := q.Get(ctx, vehicleID)
			if err != nil {
				return err
			}
			if v.InUse {
				return cerr.Conflict(fmt.Errorf(
					"vehicle id <%s> is currently in use", vehicleID,
				))
			}
			return q.Delete(ctx, vehicleID)
		})
	})
}

// Checkout moves the vehicle from available to in-use within one
// serializable transaction. See CheckoutTx for the transition rules.
func (uc *UseCase) Checkout(
	ctx context.Context, vehicleID uuid.UUID, ts time.Time,
) (v *model.Vehicle, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			v, err = uc.CheckoutTx(ctx, tx, vehicleID, ts)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CheckoutTx performs the available-to-in-use transition within the
// given transaction, so callers like the rides use case can combine it
// with their own writes atomically. It fails with cerr.NotFound for an
// unknown vehicle and with cerr.Conflict when the vehicle is already
// in use or has no location on record. Otherwise it re-stamps the
// vehicle's last known coordinates into the ledger at ts, so the ride
// clock starts at the checkout moment no matter how long the vehicle
// sat idle, and flips the availability flag.
func (uc *UseCase) CheckoutTx(
	ctx context.Context, tx repo.Tx, vehicleID uuid.UUID, ts time.Time,
) (*model.Vehicle, error) {
	v, err := uc.vehicles.Tx(tx).Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.InUse {
		return nil, cerr.Conflict(fmt.Errorf(
			"vehicle id <%s> is currently in use", vehicleID,
		))
	}
	last, err := uc.locations.Tx(tx).Latest(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, cerr.Conflict(fmt.Errorf(
			"location for vehicle id <%s> could not be found", vehicleID,
		))
	}
	rec := &model.LocationRecord{
		ID:         uuid.New(),
		VehicleID:  vehicleID,
		Coordinate: last.Coordinate,
		Timestamp:  ts,
	}
	if err := uc.locations.Tx(tx).Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("appending checkout location: %w", err)
	}
	if err := uc.vehicles.Tx(tx).MarkInUse(ctx, vehicleID); err != nil {
		return nil, err
	}
	v.InUse = true
	return v, nil
}

// Checkin moves the vehicle from in-use back to available within one
// serializable transaction and reports the ride metrics computed from
// the ledger's prior latest entry. See CheckinTx for the transition
// rules; here the prior ledger timestamp serves as the ride start.
func (uc *UseCase) Checkin(
	ctx context.Context, vehicleID uuid.UUID,
	c model.Coordinate, battery int, ts time.Time,
) (res *model.RideResult, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			var prior *model.LocationRecord
			prior, err = uc.CheckinTx(ctx, tx, vehicleID, c, battery, ts)
			if err != nil {
				return err
			}
			res, err = trip.Summarize(prior.Coordinate, prior.Timestamp, c, ts)
			if err != nil {
				return cerr.BadRequest(err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CheckinTx performs the in-use-to-available transition within the
// given transaction: it validates the state, appends the new location
// to the ledger stamped with ts, flips the availability flag, and
// updates the battery level. The ledger entry which was the latest one
// before this checkin is returned, so the caller can derive ride
// metrics from its coordinate (and from whichever start timestamp is
// authoritative in its context). Fails with cerr.NotFound for an
// unknown vehicle and with cerr.Conflict when the vehicle is not in
// use or when its ledger is empty.
func (uc *UseCase) CheckinTx(
	ctx context.Context, tx repo.Tx, vehicleID uuid.UUID,
	c model.Coordinate, battery int, ts time.Time,
) (*model.LocationRecord, error) {
	v, err := uc.vehicles.Tx(tx).Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !v.InUse {
		return nil, cerr.Conflict(fmt.Errorf(
			"vehicle id <%s> is not currently being used", vehicleID,
		))
	}
	prior, err := uc.locations.Tx(tx).Latest(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, cerr.Conflict(fmt.Errorf(
			"location for vehicle id <%s> could not be found", vehicleID,
		))
	}
	rec := &model.LocationRecord{
		ID:         uuid.New(),
		VehicleID:  vehicleID,
		Coordinate: c,
		Timestamp:  ts,
	}
	if err := uc.locations.Tx(tx).Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("appending checkin location: %w", err)
	}
	if err := uc.vehicles.Tx(tx).MarkAvailable(ctx, vehicleID, battery); err != nil {
		return nil, err
	}
	return prior, nil
}

// Get returns the vehicle identified by vehicleID.
func (uc *UseCase) Get(
	ctx context.Context, vehicleID uuid.UUID,
) (v *model.Vehicle, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		v, err = uc.vehicles.Conn(conn).Get(ctx, vehicleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// List returns up to max vehicles joined with their latest known
// location, most recently seen first. A non-positive max falls back to
// the configured default page size. Listing tolerates slightly stale
// snapshots, so no serializable transaction is used.
func (uc *UseCase) List(
	ctx context.Context, max int,
) (vs []model.VehicleWithLocation, err error) {
	if max <= 0 {
		max = uc.defaultPageSize
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		vs, err = uc.vehicles.Conn(conn).List(ctx, max)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vs, nil
}

// GetWithHistory returns the vehicle along with up to maxLocations of
// its ledger entries, newest first. A non-positive maxLocations falls
// back to the configured default page size. Both reads run in one
// default-isolation transaction for a consistent snapshot.
func (uc *UseCase) GetWithHistory(
	ctx context.Context, vehicleID uuid.UUID, maxLocations int,
) (v *model.Vehicle, history []model.LocationRecord, err error) {
	if maxLocations <= 0 {
		maxLocations = uc.defaultPageSize
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			v, err = uc.vehicles.Tx(tx).Get(ctx, vehicleID)
			if err != nil {
				return err
			}
			history, err = uc.locations.Tx(tx).ListForVehicle(
				ctx, vehicleID, maxLocations,
			)
			return err
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return v, history, nil
}
