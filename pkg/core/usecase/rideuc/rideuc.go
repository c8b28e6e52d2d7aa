// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rideuc contains the rides use case: the lifecycle manager
// which pairs a user with a vehicle for the duration of a ride,
// delegates the actual state transitions to the vehicles state machine
// through a narrow capability interface, and computes the user-facing
// ride summaries.
//
// The duration and speed of a completed ride are computed from the
// ride's own start time, not from the vehicle's ledger timestamp.
// The two can diverge when the ledger receives extra writes outside of
// the ride flow; the ride record is authoritative for what the user is
// told.
package rideuc

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

// StateMachine is the narrow capability of the vehicles use case which
// the rides use case needs: performing checkout and checkin transitions
// within a transaction which this use case controls, so the ride row
// and the vehicle/ledger mutations commit or roll back as one unit.
// It is implemented by *vehicleuc.UseCase.
type StateMachine interface {
	CheckoutTx(ctx context.Context, tx repo.Tx, vehicleID uuid.UUID, ts time.Time) (*model.Vehicle, error)
	CheckinTx(ctx context.Context, tx repo.Tx, vehicleID uuid.UUID, c model.Coordinate, battery int, ts time.Time) (*model.LocationRecord, error)
}

// UseCase represents the rides use case. It holds a database
// connection pool, the rides and users repository instances, the
// vehicles state machine capability, and the use case settings.
type UseCase struct {
	pool  repo.Pool
	rides repo.Rides
	users repo.Users
	sm    StateMachine

	defaultPageSize int
}

// New instantiates a rides use case, wiring the required collaborators
// individually and the optional settings as functional options.
func New(
	p repo.Pool, r repo.Rides, u repo.Users, sm StateMachine,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, rides: r, users: u, sm: sm}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.defaultPageSize == 0 {
		uc.defaultPageSize = 20
	}
	return uc, nil
}

// StartRide opens a ride for the (vehicle, user) pair at startTime.
// The rider is resolved first (cerr.NotFound if absent), then the
// vehicle is checked out and the ride row is inserted with a null end
// time, all within one serializable transaction. A checkout of an
// already in-use vehicle surfaces as cerr.Conflict.
func (uc *UseCase) StartRide(
	ctx context.Context, vehicleID uuid.UUID, userEmail string,
	startTime time.Time,
) (ride *model.Ride, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := uc.users.Tx(tx).Get(ctx, userEmail); err != nil {
				return err
			}
			if _, err := uc.sm.CheckoutTx(ctx, tx, vehicleID, startTime); err != nil {
				return err
			}
			ride = &model.Ride{
				ID:        uuid.New(),
				VehicleID: vehicleID,
				UserEmail: userEmail,
				StartTime: startTime,
			}
			return uc.rides.Tx(tx).Create(ctx, ride)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "ride started",
		log.ID("ride_id", ride.ID),
		log.ID("vehicle_id", vehicleID),
	)
	return ride, nil
}

// EndRide closes the active ride for the (vehicle, user) pair: it
// checks the vehicle back in at the given coordinate and battery
// level, sets the ride's end time, and returns the ride summary.
// The summary distance spans from the ledger's prior latest entry to
// the checkin coordinate, while duration and speed are derived from
// the ride's own start time. Equal start and end timestamps surface
// the zero-interval math failure as cerr.BadRequest, rolling the whole
// transaction back.
func (uc *UseCase) EndRide(
	ctx context.Context, vehicleID uuid.UUID, userEmail string,
	c model.Coordinate, battery int, endTime time.Time,
) (res *model.RideResult, err error) {
	var rideID uuid.UUID
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := uc.users.Tx(tx).Get(ctx, userEmail); err != nil {
				return err
			}
			ride, err := uc.rides.Tx(tx).Active(ctx, vehicleID, userEmail)
			if err != nil {
				return err
			}
			rideID = ride.ID
			prior, err := uc.sm.CheckinTx(ctx, tx, vehicleID, c, battery, endTime)
			if err != nil {
				return err
			}
			if err := uc.rides.Tx(tx).End(ctx, ride.ID, endTime); err != nil {
				return err
			}
			res, err = trip.Summarize(
				prior.Coordinate, ride.StartTime, c, endTime,
			)
			if err != nil {
				return cerr.BadRequest(err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "ride ended",
		log.ID("ride_id", rideID),
		log.ID("vehicle_id", vehicleID),
	)
	return res, nil
}

// RidesForUser returns up to max of the user's rides, most recently
// started first; a non-positive max falls back to the configured
// default page size. It fails with cerr.NotFound when the user is
// unknown. This read-only listing tolerates slightly stale snapshots.
func (uc *UseCase) RidesForUser(
	ctx context.Context, userEmail string, max int,
) (rides []model.Ride, err error) {
	if max <= 0 {
		max = uc.defaultPageSize
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		if _, err := uc.users.Conn(conn).Get(ctx, userEmail); err != nil {
			return err
		}
		rides, err = uc.rides.Conn(conn).ListForUser(ctx, userEmail, max)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rides, nil
}

// ActiveRide returns the open ride for the exact (vehicle, user) pair
// or cerr.NotFound when none exists.
func (uc *UseCase) ActiveRide(
	ctx context.Context, vehicleID uuid.UUID, userEmail string,
) (ride *model.Ride, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		if _, err := uc.users.Conn(conn).Get(ctx, userEmail); err != nil {
			return err
		}
		ride, err = uc.rides.Conn(conn).Active(ctx, vehicleID, userEmail)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ride, nil
}
