// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package useruc contains the user directory use case. It only offers
// registration, lookup, and removal of riders; authentication and
// profile management belong to an external system. The rides use case
// consumes the same users repository for its rider existence checks.
package useruc

import (
	"context"
	"fmt"

	"github.com/movrlab/vsweb/pkg/core/model"
	"github.com/movrlab/vsweb/pkg/core/repo"
)

// UseCase represents the user directory use case, holding a database
// connection pool and the users repository instance.
type UseCase struct {
	pool  repo.Pool
	users repo.Users
}

// New instantiates a user directory use case.
func New(p repo.Pool, u repo.Users) *UseCase {
	return &UseCase{pool: p, users: u}
}

// Register creates a rider. It fails with cerr.Conflict when the email
// address is already registered.
func (uc *UseCase) Register(
	ctx context.Context, email, firstName, lastName string,
) (u *model.User, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		u = &model.User{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		}
		return uc.users.Conn(conn).Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Get resolves a rider by email, failing with cerr.NotFound when the
// email is not registered.
func (uc *UseCase) Get(
	ctx context.Context, email string,
) (u *model.User, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		u, err = uc.users.Conn(conn).Get(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Remove deletes a rider, failing with cerr.NotFound when the email is
// not registered.
func (uc *UseCase) Remove(ctx context.Context, email string) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return uc.users.Conn(conn).Delete(ctx, email)
	})
	if err != nil {
		return fmt.Errorf("removing user: %w", err)
	}
	return nil
}
