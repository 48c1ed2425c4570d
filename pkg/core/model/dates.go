// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// NormalizeUTC converts the given instant to UTC. Instants which are
// already in UTC are returned unchanged. Adapters which accept
// timestamps without an explicit offset must parse them in the UTC
// location (treating them as UTC wall-clock values) before reaching
// this layer, so this function only has to perform the standard
// offset conversion.
func NormalizeUTC(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	return t.UTC()
}

// DateOnly truncates the given instant to its UTC calendar date,
// discarding the time of day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of whole calendar days from a to b.
// Both arguments must be date-only UTC values, as produced by the
// DateOnly function, so the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
