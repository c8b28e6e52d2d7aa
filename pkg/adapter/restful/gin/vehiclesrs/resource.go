// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, allowing the
// vehicle manipulation REST APIs to be accepted and delegated to the
// vehicles use cases respectively.
package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/serdser"
	"github.com/movrlab/vsweb/pkg/core/usecase/vehicleuc"
)

type resource struct {
	vehicles *vehicleuc.UseCase
}

// Register instantiates a resource adapting the vehicles use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/vsweb/v1/vehicles
//     in order to register a new vehicle,
//  2. GET request to /api/vsweb/v1/vehicles
//     in order to list vehicles with their latest known location,
//  3. GET request to /api/vsweb/v1/vehicles/:vid
//     in order to fetch one vehicle and its location history,
//  4. DELETE request to /api/vsweb/v1/vehicles/:vid
//     in order to remove a vehicle which is not in use.
func Register(r *gin.RouterGroup, vehicles *vehicleuc.UseCase) {
	rs := &resource{vehicles: vehicles}
	r.POST("vehicles", rs.RegisterVehicle)
	r.GET("vehicles", rs.ListVehicles)
	r.GET("vehicles/:vid", rs.GetVehicle)
	r.DELETE("vehicles/:vid", rs.RemoveVehicle)
}

func (rs *resource) RegisterVehicle(c *gin.Context) {
	req := rs.DserRegisterVehicleReq(c)
	if req == nil {
		return
	}
	v, err := rs.vehicles.Register(
		c, req.Coordinate, req.Battery, req.VehicleType,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (rs *resource) ListVehicles(c *gin.Context) {
	req := rs.DserListVehiclesReq(c)
	if req == nil {
		return
	}
	vs, err := rs.vehicles.List(c, req.MaxVehicles)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vs})
}

func (rs *resource) GetVehicle(c *gin.Context) {
	req := rs.DserGetVehicleReq(c)
	if req == nil {
		return
	}
	v, history, err := rs.vehicles.GetWithHistory(
		c, req.VehicleID, req.MaxLocations,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vehicle":          v,
		"location_history": history,
	})
}

func (rs *resource) RemoveVehicle(c *gin.Context) {
	req := rs.DserRemoveVehicleReq(c)
	if req == nil {
		return
	}
	if err := rs.vehicles.Remove(c, req.VehicleID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
