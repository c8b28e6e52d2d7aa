// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ridesrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/serdser"
	"github.com/movrlab/vsweb/pkg/core/model"
)

type rawStartRideReq struct {
	VehicleID string `json:"vehicle_id" binding:"required,uuid"`
	UserEmail string `json:"user_email" binding:"required,email"`

	// StartTime is an optional RFC 3339 timestamp; an absent value
	// means the current time. It must not lie in the future.
	StartTime *time.Time `json:"start_time" binding:"omitempty"`
}

type startRideReq struct {
	VehicleID uuid.UUID
	UserEmail string
	StartTime time.Time
}

func (rs *resource) DserStartRideReq(c *gin.Context) *startRideReq {
	req := &rawStartRideReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	var errs map[string][]string
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	val := &startRideReq{
		VehicleID: uuid.MustParse(req.VehicleID),
		UserEmail: req.UserEmail,
		StartTime: time.Now().UTC(),
	}
	if req.StartTime != nil {
		if !serdser.Assert(
			&errs, !req.StartTime.After(time.Now()),
			"start_time", "The start_time must not be in the future.",
		) {
			return nil
		}
		val.StartTime = req.StartTime.UTC()
	}
	return val
}

type rawEndRideReq struct {
	VehicleID string   `json:"vehicle_id" binding:"required,uuid"`
	UserEmail string   `json:"user_email" binding:"required,email"`
	Lat       *float64 `json:"lat" binding:"required,latitude"`
	Lon       *float64 `json:"lon" binding:"required,longitude"`
	Battery   *int     `json:"battery" binding:"required,min=0,max=100"`

	// EndTime is an optional RFC 3339 timestamp; an absent value
	// means the current time. It must not lie in the future.
	EndTime *time.Time `json:"end_time" binding:"omitempty"`
}

type endRideReq struct {
	VehicleID  uuid.UUID
	UserEmail  string
	Coordinate model.Coordinate
	Battery    int
	EndTime    time.Time
}

func (rs *resource) DserEndRideReq(c *gin.Context) *endRideReq {
	req := &rawEndRideReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	var errs map[string][]string
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	val := &endRideReq{
		VehicleID: uuid.MustParse(req.VehicleID),
		UserEmail: req.UserEmail,
		Coordinate: model.Coordinate{
			Lat: *req.Lat,
			Lon: *req.Lon,
		},
		Battery: *req.Battery,
		EndTime: time.Now().UTC(),
	}
	if req.EndTime != nil {
		if !serdser.Assert(
			&errs, !req.EndTime.After(time.Now()),
			"end_time", "The end_time must not be in the future.",
		) {
			return nil
		}
		val.EndTime = req.EndTime.UTC()
	}
	return val
}

type listRidesReq struct {
	UserEmail string `form:"user_email" binding:"required,email"`
	MaxRides  int    `form:"max_rides" binding:"omitempty,min=1"`
}

func (rs *resource) DserListRidesReq(c *gin.Context) *listRidesReq {
	req := &listRidesReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return req
}

type rawActiveRideReq struct {
	VehicleID string `form:"vehicle_id" binding:"required,uuid"`
	UserEmail string `form:"user_email" binding:"required,email"`
}

type activeRideReq struct {
	VehicleID uuid.UUID
	UserEmail string
}

func (rs *resource) DserActiveRideReq(c *gin.Context) *activeRideReq {
	req := &rawActiveRideReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return &activeRideReq{
		VehicleID: uuid.MustParse(req.VehicleID),
		UserEmail: req.UserEmail,
	}
}
