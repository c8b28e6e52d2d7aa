// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads the YAML configuration settings which are
// required by the adapters and use cases layers. Settings which may
// be left out of the configuration file are declared as pointers, so
// an absent item can be told apart from an explicit zero value and
// replaced by its default.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin"
	"github.com/movrlab/vsweb/pkg/core/repo"
	"github.com/movrlab/vsweb/pkg/core/usecase/rideuc"
	"github.com/movrlab/vsweb/pkg/core/usecase/vehicleuc"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so other layers can change freely without affecting the
// configuration file format.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Usecases Usecases // Configuration settings for supported use cases
}

// Database contains the database related configuration settings.
type Database struct {
	Host string // domain name or IP address of the DBMS server
	Port int    // port number of the DBMS server
	Name string // database name, like vsweb
	User string // database role name
	Pass string // database role password

	// SSLMode is passed through to the connection URL as the sslmode
	// query parameter. An empty value asks for the libpq default.
	SSLMode string `yaml:"ssl-mode,omitempty"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := postgres.NewPool(ctx, c.Database.ConnectionURL())
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value which are
// kept in the `d` settings. Returned URL has the postgresql scheme.
func (d Database) ConnectionURL() string {
	u := &url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, d.Pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	if d.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", d.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It can also replace some zero
// values with their expected default values (if any). So, it takes a
// pointer receiver instead of a non-reference receiver (in contrast
// to other methods).
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		d.Host = "localhost"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", d.Port)
	}
	if d.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if d.User == "" {
		return fmt.Errorf("database user is required")
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill absent items with their default
// values during the normalization.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Vehicles Vehicles // vehicles use cases related settings
	Rides    Rides    // rides use cases related settings
}

// Vehicles contains the configuration settings for the vehicles use
// cases. A nil DefaultPageSize indicates that the setting is left
// uninitialized, so ValidateAndNormalize may replace it with the
// standard page size.
type Vehicles struct {
	DefaultPageSize *int `yaml:"default-page-size"`
}

// NewUseCase instantiates a new vehicles use case based on the
// settings in the `v` struct.
func (v Vehicles) NewUseCase(
	p repo.Pool, vr repo.Vehicles, lr repo.Locations,
) (*vehicleuc.UseCase, error) {
	opts := make([]vehicleuc.Option, 0, 1)
	if v.DefaultPageSize != nil {
		opts = append(
			opts, vehicleuc.WithDefaultPageSize(*v.DefaultPageSize),
		)
	}
	return vehicleuc.New(p, vr, lr, opts...)
}

// Rides contains the configuration settings for the rides use cases.
type Rides struct {
	DefaultPageSize *int `yaml:"default-page-size"`
}

// NewUseCase instantiates a new rides use case based on the settings
// in the `r` struct, delegating the vehicle state transitions to the
// `sm` state machine (which the vehicles use case realizes).
func (r Rides) NewUseCase(
	p repo.Pool, rr repo.Rides, ur repo.Users, sm rideuc.StateMachine,
) (*rideuc.UseCase, error) {
	opts := make([]rideuc.Option, 0, 1)
	if r.DefaultPageSize != nil {
		opts = append(
			opts, rideuc.WithDefaultPageSize(*r.DefaultPageSize),
		)
	}
	return rideuc.New(p, rr, ur, sm, opts...)
}

// Load reads the configuration file at the given path, unmarshals it,
// and loads a Config instance after validating and normalizing its
// settings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	Nil2Zero(&c.Gin.Logger)
	Nil2Zero(&c.Gin.Recovery)
	standardPageSize := 20
	OverwriteNil(&c.Usecases.Vehicles.DefaultPageSize, &standardPageSize)
	OverwriteNil(&c.Usecases.Rides.DefaultPageSize, &standardPageSize)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	for _, ps := range []*int{
		c.Usecases.Vehicles.DefaultPageSize,
		c.Usecases.Rides.DefaultPageSize,
	} {
		if ps != nil && *ps < 1 {
			return fmt.Errorf("invalid default-page-size: %d", *ps)
		}
	}
	return nil
}
