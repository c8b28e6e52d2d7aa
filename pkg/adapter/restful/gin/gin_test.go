// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/movrlab/vsweb/internal/test/dbcontainer"
	"github.com/movrlab/vsweb/pkg/adapter/config"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/routes"
	"github.com/movrlab/vsweb/pkg/core/model"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.NewWithSchema(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	pageSize := 10
	err := routes.Register(igts.Gin, igts.Pool, &config.Config{
		Usecases: config.Usecases{
			Vehicles: config.Vehicles{DefaultPageSize: &pageSize},
			Rides:    config.Rides{DefaultPageSize: &pageSize},
		},
	})
	igts.Require().NoError(err, "failed to register Gin routes")
}

func jsonBody(m map[string]any) io.Reader {
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(b)
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	method, path string, body io.Reader, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.Require().NoError(
			json.Unmarshal(b, res), "body is not json: %s", b,
		)
	}
	return w
}

func (igts *IntegrationGinTestSuite) registerVehicle() *model.Vehicle {
	v := &model.Vehicle{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/vsweb/v1/vehicles",
		jsonBody(map[string]any{
			"lat":          40.58901,
			"lon":          -74.4754,
			"battery":      90,
			"vehicle_type": "scooter",
		}),
		v,
	)
	igts.Require().Equal(201, w.Code, "failed to register vehicle")
	return v
}

func (igts *IntegrationGinTestSuite) registerUser() string {
	email := uuid.New().String() + "@example.com"
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/vsweb/v1/users",
		jsonBody(map[string]any{
			"email":      email,
			"first_name": "Test",
			"last_name":  "Rider",
		}),
		nil,
	)
	igts.Require().Equal(201, w.Code, "failed to register user")
	return email
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	for _, tc := range []struct {
		name   string
		method string
		path   string
		body   io.Reader
	}{
		{
			name:   "register vehicle without battery",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/vehicles",
			body: jsonBody(map[string]any{
				"lat": 40.0, "lon": -74.0, "vehicle_type": "bike",
			}),
		},
		{
			name:   "register vehicle with out-of-range battery",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/vehicles",
			body: jsonBody(map[string]any{
				"lat": 40.0, "lon": -74.0,
				"battery": 101, "vehicle_type": "bike",
			}),
		},
		{
			name:   "register vehicle with out-of-range latitude",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/vehicles",
			body: jsonBody(map[string]any{
				"lat": 91.0, "lon": -74.0,
				"battery": 50, "vehicle_type": "bike",
			}),
		},
		{
			name:   "get vehicle with malformed id",
			method: http.MethodGet,
			path:   "/api/vsweb/v1/vehicles/not-a-uuid",
			body:   nil,
		},
		{
			name:   "start ride without user email",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/rides/start",
			body: jsonBody(map[string]any{
				"vehicle_id": uuid.New().String(),
			}),
		},
		{
			name:   "start ride with malformed email",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/rides/start",
			body: jsonBody(map[string]any{
				"vehicle_id": uuid.New().String(),
				"user_email": "not-an-email",
			}),
		},
		{
			name:   "start ride with future start time",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/rides/start",
			body: jsonBody(map[string]any{
				"vehicle_id": uuid.New().String(),
				"user_email": "bob@example.com",
				"start_time": time.Now().UTC().
					Add(time.Hour).Format(time.RFC3339),
			}),
		},
		{
			name:   "end ride with future end time",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/rides/end",
			body: jsonBody(map[string]any{
				"vehicle_id": uuid.New().String(),
				"user_email": "bob@example.com",
				"lat":        40.0,
				"lon":        -74.0,
				"battery":    50,
				"end_time": time.Now().UTC().
					Add(time.Hour).Format(time.RFC3339),
			}),
		},
		{
			name:   "end ride without coordinates",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/rides/end",
			body: jsonBody(map[string]any{
				"vehicle_id": uuid.New().String(),
				"user_email": "bob@example.com",
				"battery":    50,
			}),
		},
		{
			name:   "list rides without user email",
			method: http.MethodGet,
			path:   "/api/vsweb/v1/rides",
			body:   nil,
		},
		{
			name:   "register user without email",
			method: http.MethodPost,
			path:   "/api/vsweb/v1/users",
			body: jsonBody(map[string]any{
				"first_name": "No", "last_name": "Email",
			}),
		},
	} {
		igts.Run(tc.name, func() {
			w := igts.sendReqRecvResp(tc.method, tc.path, tc.body, nil)
			igts.Equal(400, w.Code)
		})
	}
}

func (igts *IntegrationGinTestSuite) TestVehicleLifecycle() {
	v := igts.registerVehicle()
	igts.False(v.InUse)
	igts.Equal(90, v.Battery)

	res := &struct {
		Vehicle         model.Vehicle          `json:"vehicle"`
		LocationHistory []model.LocationRecord `json:"location_history"`
	}{}
	w := igts.sendReqRecvResp(
		http.MethodGet,
		"/api/vsweb/v1/vehicles/"+v.ID.String(),
		nil, res,
	)
	igts.Equal(200, w.Code)
	igts.Equal(v.ID, res.Vehicle.ID)
	igts.Require().Len(res.LocationHistory, 1)
	igts.InDelta(40.58901, res.LocationHistory[0].Coordinate.Lat, 1e-9)

	list := &struct {
		Vehicles []model.VehicleWithLocation `json:"vehicles"`
	}{}
	w = igts.sendReqRecvResp(
		http.MethodGet, "/api/vsweb/v1/vehicles", nil, list,
	)
	igts.Equal(200, w.Code)
	igts.NotEmpty(list.Vehicles, "the new vehicle must be listed")

	w = igts.sendReqRecvResp(
		http.MethodDelete,
		"/api/vsweb/v1/vehicles/"+v.ID.String(),
		nil, nil,
	)
	igts.Equal(204, w.Code)

	errRes := &struct{ Detail string }{}
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/vsweb/v1/vehicles/"+v.ID.String(),
		nil, errRes,
	)
	igts.Equal(404, w.Code)
	igts.Equal(
		fmt.Sprintf("vehicle id <%s> not found", v.ID), errRes.Detail,
		"wrong detail",
	)
}

func (igts *IntegrationGinTestSuite) TestRideLifecycle() {
	v := igts.registerVehicle()
	email := igts.registerUser()

	ride := &model.Ride{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/vsweb/v1/rides/start",
		jsonBody(map[string]any{
			"vehicle_id": v.ID.String(),
			"user_email": email,
		}),
		ride,
	)
	igts.Require().Equal(201, w.Code, "failed to start ride")
	igts.Equal(v.ID, ride.VehicleID)
	igts.Nil(ride.EndTime)

	active := &model.Ride{}
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/vsweb/v1/rides/active?vehicle_id="+v.ID.String()+
			"&user_email="+url.QueryEscape(email),
		nil, active,
	)
	igts.Equal(200, w.Code)
	igts.Equal(ride.ID, active.ID)

	errRes := &struct{ Detail string }{}
	w = igts.sendReqRecvResp(
		http.MethodPost, "/api/vsweb/v1/rides/start",
		jsonBody(map[string]any{
			"vehicle_id": v.ID.String(),
			"user_email": email,
		}),
		errRes,
	)
	igts.Equal(409, w.Code, "an in-use vehicle must not start again")
	igts.Equal(
		fmt.Sprintf("vehicle id <%s> is currently in use", v.ID),
		errRes.Detail, "wrong detail",
	)

	result := &model.RideResult{}
	w = igts.sendReqRecvResp(
		http.MethodPost, "/api/vsweb/v1/rides/end",
		jsonBody(map[string]any{
			"vehicle_id": v.ID.String(),
			"user_email": email,
			"lat":        40.73061,
			"lon":        -73.935242,
			"battery":    64,
		}),
		result,
	)
	igts.Equal(200, w.Code, "failed to end ride")
	igts.InDelta(48.31, result.DistanceKm, 0.2, "wrong ride distance")
	igts.Positive(result.DurationMinutes)
	igts.Positive(result.AverageSpeedKmH)

	rides := &struct {
		Rides []model.Ride `json:"rides"`
	}{}
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/vsweb/v1/rides?user_email="+url.QueryEscape(email),
		nil, rides,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(rides.Rides, 1)
	igts.Equal(ride.ID, rides.Rides[0].ID)
	igts.NotNil(rides.Rides[0].EndTime)
}

func (igts *IntegrationGinTestSuite) TestUserLifecycle() {
	email := igts.registerUser()

	errRes := &struct{ Detail string }{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/vsweb/v1/users",
		jsonBody(map[string]any{
			"email":      email,
			"first_name": "Dup",
			"last_name":  "Licate",
		}),
		errRes,
	)
	igts.Equal(409, w.Code, "duplicate emails must conflict")
	igts.Equal(
		fmt.Sprintf("user email <%s> already exists", email),
		errRes.Detail, "wrong detail",
	)

	u := &model.User{}
	w = igts.sendReqRecvResp(
		http.MethodGet, "/api/vsweb/v1/users/"+email, nil, u,
	)
	igts.Equal(200, w.Code)
	igts.Equal(email, u.Email)
	igts.Equal("Test", u.FirstName)

	w = igts.sendReqRecvResp(
		http.MethodDelete, "/api/vsweb/v1/users/"+email, nil, nil,
	)
	igts.Equal(204, w.Code)

	w = igts.sendReqRecvResp(
		http.MethodGet, "/api/vsweb/v1/users/"+email, nil, errRes,
	)
	igts.Equal(404, w.Code)
}

func (igts *IntegrationGinTestSuite) TestNotFound() {
	missing := uuid.New()
	errRes := &struct{ Detail string }{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/vsweb/v1/rides/start",
		jsonBody(map[string]any{
			"vehicle_id": missing.String(),
			"user_email": "nobody@example.com",
		}),
		errRes,
	)
	igts.Equal(404, w.Code)
	igts.Equal(
		"user email <nobody@example.com> not found", errRes.Detail,
		"the rider must be resolved before the vehicle",
	)
}
