// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentalsuc

import (
	"errors"
	"time"
)

// Option is a functional option for the rentals use case.
type Option func(uc *UseCase) error

// WithClock option configures a rentals UseCase instance to take the
// current time from the given function instead of time.Now, so tests
// may create rentals with a deterministic start date. This option may
// be passed to the New() function.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock function may not be nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
