// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrs

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/serdser"
	"github.com/movrlab/vsweb/pkg/core/model"
)

type rawRegisterVehicleReq struct {
	Lat         *float64 `json:"lat" binding:"required,latitude"`
	Lon         *float64 `json:"lon" binding:"required,longitude"`
	Battery     *int     `json:"battery" binding:"required,min=0,max=100"`
	VehicleType string   `json:"vehicle_type" binding:"required,max=100"`
}

type registerVehicleReq struct {
	Coordinate  model.Coordinate
	Battery     int
	VehicleType string
}

func (rs *resource) DserRegisterVehicleReq(
	c *gin.Context,
) *registerVehicleReq {
	req := &rawRegisterVehicleReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return &registerVehicleReq{
		Coordinate: model.Coordinate{
			Lat: *req.Lat,
			Lon: *req.Lon,
		},
		Battery:     *req.Battery,
		VehicleType: req.VehicleType,
	}
}

type listVehiclesReq struct {
	MaxVehicles int `form:"max_vehicles" binding:"omitempty,min=1"`
}

func (rs *resource) DserListVehiclesReq(c *gin.Context) *listVehiclesReq {
	req := &listVehiclesReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return req
}

type vehicleURI struct {
	VehicleID string `uri:"vid" binding:"required,uuid"`
}

type getVehicleReq struct {
	VehicleID    uuid.UUID
	MaxLocations int
}

func (rs *resource) DserGetVehicleReq(c *gin.Context) *getVehicleReq {
	uri := &vehicleURI{}
	if ok := serdser.BindURI(c, uri); !ok {
		return nil
	}
	q := &struct {
		MaxLocations int `form:"max_locations" binding:"omitempty,min=1"`
	}{}
	if ok := serdser.Bind(c, q); !ok {
		return nil
	}
	// the uuid binding tag guarantees a parsable value
	vid := uuid.MustParse(uri.VehicleID)
	return &getVehicleReq{
		VehicleID:    vid,
		MaxLocations: q.MaxLocations,
	}
}

type removeVehicleReq struct {
	VehicleID uuid.UUID
}

func (rs *resource) DserRemoveVehicleReq(c *gin.Context) *removeVehicleReq {
	uri := &vehicleURI{}
	if ok := serdser.BindURI(c, uri); !ok {
		return nil
	}
	return &removeVehicleReq{VehicleID: uuid.MustParse(uri.VehicleID)}
}
