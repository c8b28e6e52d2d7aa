// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rideuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the rides use case.
type Option func(uc *UseCase) error

// WithDefaultPageSize option configures the number of rows which the
// listing operations return when their caller does not ask for an
// explicit limit. This option may be passed to the New() function.
func WithDefaultPageSize(size int) Option {
	return func(uc *UseCase) error {
		if size <= 0 {
			return fmt.Errorf("page size (%d) is not positive", size)
		}
		if uc.defaultPageSize != 0 {
			return errors.New("page size is already configured")
		}
		uc.defaultPageSize = size
		return nil
	}
}
