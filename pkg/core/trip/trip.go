// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package trip contains the pure geospatial and time math which is
// used to derive ride metrics from two (location, timestamp) pairs.
// All functions are deterministic and side-effect free. Input range
// validation (latitude, longitude, battery) is the caller's
// responsibility; these functions trust their arguments.
package trip

import (
	"errors"
	"time"

	"github.com/movrlab/vsweb/pkg/core/model"
	"github.com/umahmood/haversine"
)

// ErrZeroDuration indicates that an average speed was requested over
// a zero-length time interval. It signals an ill-formed timestamp pair
// rather than a normal outcome.
var ErrZeroDuration = errors.New(
	"cannot calculate an average velocity when the time interval is 0",
)

// Distance returns the great-circle distance between two coordinates
// in kilometers, using the haversine formula. The result is
// non-negative, symmetric in its arguments, and zero iff the points
// coincide (modulo floating point precision).
func Distance(from, to model.Coordinate) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: from.Lat, Lon: from.Lon},
		haversine.Coord{Lat: to.Lat, Lon: to.Lon},
	)
	return km
}

// DurationMinutes returns (end - start) in minutes. The result may be
// negative if the timestamps are out of order; it is not clamped, so
// callers must supply well-ordered timestamps.
func DurationMinutes(start, end time.Time) float64 {
	return end.Sub(start).Minutes()
}

// AverageSpeed returns the average velocity in km/h for a movement
// from the `from` coordinate at the `start` time to the `to`
// coordinate at the `end` time. It fails with ErrZeroDuration when
// both timestamps are equal.
func AverageSpeed(
	from model.Coordinate, start time.Time,
	to model.Coordinate, end time.Time,
) (float64, error) {
	minutes := DurationMinutes(start, end)
	if minutes == 0 {
		return 0, ErrZeroDuration
	}
	return Distance(from, to) / (minutes / 60), nil
}

// Summarize composes Distance, DurationMinutes, and AverageSpeed into
// a RideResult for the ride which started at (from, start) and ended
// at (to, end).
func Summarize(
	from model.Coordinate, start time.Time,
	to model.Coordinate, end time.Time,
) (*model.RideResult, error) {
	speed, err := AverageSpeed(from, start, to, end)
	if err != nil {
		return nil, err
	}
	return &model.RideResult{
		DistanceKm:      Distance(from, to),
		DurationMinutes: DurationMinutes(start, end),
		AverageSpeedKmH: speed,
	}, nil
}
