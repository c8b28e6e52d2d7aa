// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/movrlab/vsweb/pkg/adapter/config"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/locationsrp"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/ridesrp"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/usersrp"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/ridesrs"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/usersrs"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/movrlab/vsweb/pkg/core/repo"
	"github.com/movrlab/vsweb/pkg/core/usecase/useruc"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like rideuc and each repository package is named like ridesrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like ridesrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	vehiclesRepo := vehiclesrp.New()
	locationsRepo := locationsrp.New()
	ridesRepo := ridesrp.New()
	usersRepo := usersrp.New()

	vehiclesUseCase, err := c.Usecases.Vehicles.NewUseCase(
		p, vehiclesRepo, locationsRepo,
	)
	if err != nil {
		return fmt.Errorf("creating vehicles use case: %w", err)
	}
	ridesUseCase, err := c.Usecases.Rides.NewUseCase(
		p, ridesRepo, usersRepo, vehiclesUseCase,
	)
	if err != nil {
		return fmt.Errorf("creating rides use case: %w", err)
	}
	usersUseCase := useruc.New(p, usersRepo)

	r := e.Group("/api/vsweb/v1")
	vehiclesrs.Register(r, vehiclesUseCase)
	ridesrs.Register(r, ridesUseCase)
	usersrs.Register(r, usersUseCase)
	return nil
}
