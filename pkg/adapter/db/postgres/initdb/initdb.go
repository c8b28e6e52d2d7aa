// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package initdb provides the Settler type which creates the database
// tables and fills them with development or production suitable
// initial data. Both usages run within a caller-provided transaction,
// so a failed initialization leaves the database untouched.
package initdb

import (
	"context"
	"fmt"

	"github.com/movrlab/vsweb/pkg/core/repo"
)

// Settler struct provides the database schema initialization logic.
// Each instance wraps and uses a single transaction of the target
// database, but the caller is responsible to commit that transaction
// in order to finalize the initialization results.
type Settler struct {
	tx repo.Tx
}

// New creates a new Settler instance, wrapping the given `tx` database
// transaction. The settler object expects the database schema to exist
// and only tries to create relevant tables in that schema.
func New(tx repo.Tx) *Settler {
	return &Settler{
		tx: tx,
	}
}

// InitDevSchema creates the vehicles, location_history, rides, and
// users tables and fills them with the development suitable initial
// data, that is, a handful of vehicles with a seeded location each
// and a couple of rider accounts.
func (s *Settler) InitDevSchema(ctx context.Context) error {
	if err := s.createTables(ctx); err != nil {
		return err
	}
	if _, err := s.tx.Exec(ctx, `
INSERT INTO users(email, first_name, last_name) VALUES
	('bob@example.com', 'Bob', 'Loblaw'),
	('alice@example.com', 'Alice', 'Liddell')
`); err != nil {
		return fmt.Errorf("inserting users: %w", err)
	}
	if _, err := s.tx.Exec(ctx, `
INSERT INTO vehicles(id, battery, in_use, vehicle_type) VALUES
	('11111111-1111-4111-8111-111111111111', 90, FALSE, 'scooter'),
	('22222222-2222-4222-8222-222222222222', 64, FALSE, 'bike'),
	('33333333-3333-4333-8333-333333333333', 77, FALSE, 'skateboard')
`); err != nil {
		return fmt.Errorf("inserting vehicles: %w", err)
	}
	if _, err := s.tx.Exec(ctx, `
INSERT INTO location_history(id, vehicle_id, lat, lon, ts) VALUES
	(gen_random_uuid(), '11111111-1111-4111-8111-111111111111',
		40.58901, -74.4754, now()),
	(gen_random_uuid(), '22222222-2222-4222-8222-222222222222',
		40.73061, -73.935242, now()),
	(gen_random_uuid(), '33333333-3333-4333-8333-333333333333',
		40.70382, -74.01208, now())
`); err != nil {
		return fmt.Errorf("inserting location history: %w", err)
	}
	return nil
}

// InitProdSchema creates the vehicles, location_history, rides, and
// users tables without any initial data rows.
func (s *Settler) InitProdSchema(ctx context.Context) error {
	return s.createTables(ctx)
}

func (s *Settler) createTables(ctx context.Context) error {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
	id uuid PRIMARY KEY,
	battery INT NOT NULL,
	in_use BOOL NOT NULL,
	vehicle_type VARCHAR(100) NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS location_history (
	id uuid PRIMARY KEY,
	vehicle_id uuid NOT NULL
		REFERENCES vehicles(id) ON DELETE CASCADE,
	lat FLOAT8 NOT NULL,
	lon FLOAT8 NOT NULL,
	ts TIMESTAMPTZ NOT NULL,
	seq BIGSERIAL
)`,
		`CREATE INDEX IF NOT EXISTS location_history_vehicle_ts
	ON location_history (vehicle_id, ts DESC, seq DESC)`,
		`CREATE TABLE IF NOT EXISTS users (
	email VARCHAR(254) PRIMARY KEY,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS rides (
	id uuid PRIMARY KEY,
	vehicle_id uuid NOT NULL
		REFERENCES vehicles(id) ON DELETE CASCADE,
	user_email VARCHAR(254) NOT NULL,
	start_ts TIMESTAMPTZ NOT NULL,
	end_ts TIMESTAMPTZ
)`,
		`CREATE INDEX IF NOT EXISTS rides_user_start
	ON rides (user_email, start_ts DESC)`,
	} {
		if _, err := s.tx.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}
