// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ridesrs realizes the rides resource, adapting the ride
// lifecycle REST APIs to the rides use cases.
package ridesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/serdser"
	"github.com/movrlab/vsweb/pkg/core/usecase/rideuc"
)

type resource struct {
	rides *rideuc.UseCase
}

// Register instantiates a resource adapting the rides use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/vsweb/v1/rides/start
//     in order to check a vehicle out and open a ride,
//  2. POST request to /api/vsweb/v1/rides/end
//     in order to check the vehicle back in and close the ride,
//  3. GET request to /api/vsweb/v1/rides
//     in order to list a user's rides,
//  4. GET request to /api/vsweb/v1/rides/active
//     in order to fetch the open ride of a (vehicle, user) pair.
func Register(r *gin.RouterGroup, rides *rideuc.UseCase) {
	rs := &resource{rides: rides}
	r.POST("rides/start", rs.StartRide)
	r.POST("rides/end", rs.EndRide)
	r.GET("rides", rs.ListRides)
	r.GET("rides/active", rs.ActiveRide)
}

func (rs *resource) StartRide(c *gin.Context) {
	req := rs.DserStartRideReq(c)
	if req == nil {
		return
	}
	ride, err := rs.rides.StartRide(
		c, req.VehicleID, req.UserEmail, req.StartTime,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

func (rs *resource) EndRide(c *gin.Context) {
	req := rs.DserEndRideReq(c)
	if req == nil {
		return
	}
	res, err := rs.rides.EndRide(
		c, req.VehicleID, req.UserEmail,
		req.Coordinate, req.Battery, req.EndTime,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rs *resource) ListRides(c *gin.Context) {
	req := rs.DserListRidesReq(c)
	if req == nil {
		return
	}
	rides, err := rs.rides.RidesForUser(c, req.UserEmail, req.MaxRides)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": rides})
}

func (rs *resource) ActiveRide(c *gin.Context) {
	req := rs.DserActiveRideReq(c)
	if req == nil {
		return
	}
	ride, err := rs.rides.ActiveRide(c, req.VehicleID, req.UserEmail)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}
