// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser facilitates the common serialization and
// deserialization logic of REST request handlers, binding requests
// into tagged structs and reporting errors with their negotiated
// HTTP status codes.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/movrlab/vsweb/pkg/core/cerr"
)

// Bind deserializes the request body and query parameters into the
// req struct, reporting binding or validation errors with a 400 Bad
// Request response. It returns true if binding succeeded and the
// request processing may continue.
func Bind(c *gin.Context, req any) bool {
	return serErrs(c, c.ShouldBind(req))
}

// BindURI deserializes the URI path parameters into the req struct,
// following the same error reporting convention as Bind.
func BindURI(c *gin.Context, req any) bool {
	return serErrs(c, c.ShouldBindUri(req))
}

func serErrs(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends the given error messages for the named field to the
// errs map, allocating the map on its first use.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// Assert records the msgs for the named field if ok is false and
// returns ok unchanged, so a series of validations can be chained.
func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr serializes an error response, taking the HTTP status code
// from the wrapped cerr.Error (if any) and falling back to the 500
// Internal Server Error status code otherwise.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}
