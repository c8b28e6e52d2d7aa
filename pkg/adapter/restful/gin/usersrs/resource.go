// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, adapting the rider
// directory REST APIs to the users use cases.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/movrlab/vsweb/pkg/adapter/restful/gin/serdser"
	"github.com/movrlab/vsweb/pkg/core/usecase/useruc"
)

type resource struct {
	users *useruc.UseCase
}

// Register instantiates a resource adapting the users use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/vsweb/v1/users
//     in order to register a new rider,
//  2. GET request to /api/vsweb/v1/users/:email
//     in order to fetch a rider,
//  3. DELETE request to /api/vsweb/v1/users/:email
//     in order to remove a rider.
func Register(r *gin.RouterGroup, users *useruc.UseCase) {
	rs := &resource{users: users}
	r.POST("users", rs.RegisterUser)
	r.GET("users/:email", rs.GetUser)
	r.DELETE("users/:email", rs.RemoveUser)
}

type registerUserReq struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

func (rs *resource) RegisterUser(c *gin.Context) {
	req := &registerUserReq{}
	if ok := serdser.Bind(c, req); !ok {
		return
	}
	u, err := rs.users.Register(c, req.Email, req.FirstName, req.LastName)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type userURI struct {
	Email string `uri:"email" binding:"required,email"`
}

func (rs *resource) GetUser(c *gin.Context) {
	uri := &userURI{}
	if ok := serdser.BindURI(c, uri); !ok {
		return
	}
	u, err := rs.users.Get(c, uri.Email)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (rs *resource) RemoveUser(c *gin.Context) {
	uri := &userURI{}
	if ok := serdser.BindURI(c, uri); !ok {
		return
	}
	if err := rs.users.Remove(c, uri.Email); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
