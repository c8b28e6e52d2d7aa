// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rideuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/google/uuid"
	"github.com/movrlab/vsweb/internal/test/dbcontainer"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/locationsrp"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/ridesrp"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/usersrp"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/movrlab/vsweb/pkg/core/cerr"
	"github.com/movrlab/vsweb/pkg/core/model"
	"github.com/movrlab/vsweb/pkg/core/usecase/rideuc"
	"github.com/movrlab/vsweb/pkg/core/usecase/useruc"
	"github.com/movrlab/vsweb/pkg/core/usecase/vehicleuc"
	"github.com/stretchr/testify/suite"
)

var (
	newBrunswick = model.Coordinate{Lat: 40.58901, Lon: -74.4754}
	newYork      = model.Coordinate{Lat: 40.73061, Lon: -73.935242}
)

type RidesUseCaseTestSuite struct {
	suite.Suite

	Ctx      context.Context
	Pg       *sqltestutil.PostgresContainer
	Pool     *postgres.Pool
	Vehicles *vehicleuc.UseCase
	Rides    *rideuc.UseCase
	Users    *useruc.UseCase
}

func TestRidesUseCaseTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.NewWithSchema(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &RidesUseCaseTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (rts *RidesUseCaseTestSuite) SetupSuite() {
	usersRepo := usersrp.New()
	vuc, err := vehicleuc.New(
		rts.Pool, vehiclesrp.New(), locationsrp.New(),
	)
	rts.Require().NoError(err, "cannot instantiate vehicles use case")
	ruc, err := rideuc.New(rts.Pool, ridesrp.New(), usersRepo, vuc)
	rts.Require().NoError(err, "cannot instantiate rides use case")
	rts.Vehicles = vuc
	rts.Rides = ruc
	rts.Users = useruc.New(rts.Pool, usersRepo)
}

// newRider registers a throwaway rider and returns its email.
func (rts *RidesUseCaseTestSuite) newRider() string {
	email := uuid.New().String() + "@example.com"
	_, err := rts.Users.Register(rts.Ctx, email, "Test", "Rider")
	rts.Require().NoError(err, "failed to register rider")
	return email
}

func (rts *RidesUseCaseTestSuite) newVehicle() *model.Vehicle {
	v, err := rts.Vehicles.Register(rts.Ctx, newBrunswick, 90, "scooter")
	rts.Require().NoError(err, "failed to register vehicle")
	return v
}

func (rts *RidesUseCaseTestSuite) TestRideLifecycle() {
	email := rts.newRider()
	v := rts.newVehicle()

	_, err := rts.Rides.ActiveRide(rts.Ctx, v.ID, email)
	var ce *cerr.Error
	rts.Require().ErrorAs(err, &ce, "expected a cerr.Error")
	rts.Equal(http.StatusNotFound, ce.HTTPStatusCode,
		"no ride may be active before the start")
	rts.ErrorContains(err, "no active ride for this vehicle")

	t0 := time.Now().UTC().Truncate(time.Microsecond)
	ride, err := rts.Rides.StartRide(rts.Ctx, v.ID, email, t0)
	rts.Require().NoError(err, "failed to start ride")
	rts.True(ride.Active(), "a fresh ride must be active")
	rts.Equal(v.ID, ride.VehicleID)
	rts.Equal(email, ride.UserEmail)

	got, err := rts.Vehicles.Get(rts.Ctx, v.ID)
	rts.Require().NoError(err)
	rts.True(got.InUse, "starting a ride must check the vehicle out")

	active, err := rts.Rides.ActiveRide(rts.Ctx, v.ID, email)
	rts.Require().NoError(err, "failed to fetch active ride")
	rts.Equal(ride.ID, active.ID)

	t1 := t0.Add(2 * time.Hour)
	res, err := rts.Rides.EndRide(rts.Ctx, v.ID, email, newYork, 64, t1)
	rts.Require().NoError(err, "failed to end ride")
	rts.InDelta(48.31, res.DistanceKm, 0.2, "wrong ride distance")
	rts.InDelta(120, res.DurationMinutes, 1e-9,
		"duration must be derived from the ride start time")
	rts.InDelta(res.DistanceKm/2, res.AverageSpeedKmH, 1e-9,
		"wrong average speed")

	_, err = rts.Rides.ActiveRide(rts.Ctx, v.ID, email)
	rts.Require().ErrorAs(err, &ce, "expected a cerr.Error")
	rts.Equal(http.StatusNotFound, ce.HTTPStatusCode,
		"no ride may stay active after the end")

	got, err = rts.Vehicles.Get(rts.Ctx, v.ID)
	rts.Require().NoError(err)
	rts.False(got.InUse, "ending a ride must check the vehicle in")
	rts.Equal(64, got.Battery)
}

func (rts *RidesUseCaseTestSuite) TestStartRideUnknownUser() {
	v := rts.newVehicle()
	_, err := rts.Rides.StartRide(
		rts.Ctx, v.ID, "nobody@example.com", time.Now().UTC(),
	)
	var ce *cerr.Error
	rts.Require().ErrorAs(err, &ce, "expected a cerr.Error")
	rts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
	rts.ErrorContains(err, "user email <nobody@example.com> not found")

	got, err := rts.Vehicles.Get(rts.Ctx, v.ID)
	rts.Require().NoError(err)
	rts.False(got.InUse, "a failed start must not check the vehicle out")
}

func (rts *RidesUseCaseTestSuite) TestStartRideInUseVehicle() {
	email := rts.newRider()
	other := rts.newRider()
	v := rts.newVehicle()

	_, err := rts.Rides.StartRide(rts.Ctx, v.ID, email, time.Now().UTC())
	rts.Require().NoError(err, "failed to start first ride")

	_, err = rts.Rides.StartRide(rts.Ctx, v.ID, other, time.Now().UTC())
	var ce *cerr.Error
	rts.Require().ErrorAs(err, &ce, "expected a cerr.Error")
	rts.Equal(http.StatusConflict, ce.HTTPStatusCode)
	rts.ErrorContains(err, "is currently in use")
}

func (rts *RidesUseCaseTestSuite) TestEndRideWrongUser() {
	email := rts.newRider()
	other := rts.newRider()
	v := rts.newVehicle()

	_, err := rts.Rides.StartRide(rts.Ctx, v.ID, email, time.Now().UTC())
	rts.Require().NoError(err, "failed to start ride")

	_, err = rts.Rides.EndRide(
		rts.Ctx, v.ID, other, newYork, 50,
		time.Now().UTC().Add(time.Minute),
	)
	var ce *cerr.Error
	rts.Require().ErrorAs(err, &ce, "expected a cerr.Error")
	rts.Equal(http.StatusNotFound, ce.HTTPStatusCode,
		"only the rider who started the ride may end it")
	rts.ErrorContains(err, "no active ride for this vehicle")

	got, err := rts.Vehicles.Get(rts.Ctx, v.ID)
	rts.Require().NoError(err)
	rts.True(got.InUse, "a failed end must keep the vehicle in use")
}

func (rts *RidesUseCaseTestSuite) TestRidesForUser() {
	email := rts.newRider()
	v1 := rts.newVehicle()
	v2 := rts.newVehicle()

	t0 := time.Now().UTC().Truncate(time.Microsecond)
	r1, err := rts.Rides.StartRide(rts.Ctx, v1.ID, email, t0)
	rts.Require().NoError(err)
	_, err = rts.Rides.EndRide(
		rts.Ctx, v1.ID, email, newYork, 70, t0.Add(time.Hour),
	)
	rts.Require().NoError(err)
	r2, err := rts.Rides.StartRide(
		rts.Ctx, v2.ID, email, t0.Add(2*time.Hour),
	)
	rts.Require().NoError(err)

	rides, err := rts.Rides.RidesForUser(rts.Ctx, email, 0)
	rts.Require().NoError(err, "failed to list rides")
	rts.Require().Len(rides, 2)
	rts.Equal(r2.ID, rides[0].ID, "most recently started ride first")
	rts.Equal(r1.ID, rides[1].ID)
	rts.True(rides[0].Active())
	rts.False(rides[1].Active())

	rides, err = rts.Rides.RidesForUser(rts.Ctx, email, 1)
	rts.Require().NoError(err, "failed to list rides with a max")
	rts.Require().Len(rides, 1)
	rts.Equal(r2.ID, rides[0].ID)

	_, err = rts.Rides.RidesForUser(rts.Ctx, "nobody@example.com", 0)
	var ce *cerr.Error
	rts.Require().ErrorAs(err, &ce, "expected a cerr.Error")
	rts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
}

func (rts *RidesUseCaseTestSuite) TestEndRideZeroDuration() {
	email := rts.newRider()
	v := rts.newVehicle()

	t0 := time.Now().UTC().Truncate(time.Microsecond)
	ride, err := rts.Rides.StartRide(rts.Ctx, v.ID, email, t0)
	rts.Require().NoError(err, "failed to start ride")

	_, err = rts.Rides.EndRide(rts.Ctx, v.ID, email, newYork, 50, t0)
	var ce *cerr.Error
	rts.Require().ErrorAs(err, &ce, "expected a cerr.Error")
	rts.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
	rts.ErrorContains(err, "cannot calculate an average velocity")

	active, err := rts.Rides.ActiveRide(rts.Ctx, v.ID, email)
	rts.Require().NoError(err, "the whole end must roll back")
	rts.Equal(ride.ID, active.ID, "the ride must remain active")
}
