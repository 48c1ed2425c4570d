// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strings"
)

// LicenseType specifies the driving license category enum, accepting
// the A, B, and AB categories. Although this enum is numeric, it is
// (de)serialized as a string for readability in the adapter layer.
type LicenseType int

// Valid values for the LicenseType enum.
const (
	LicenseTypeInvalid LicenseType = iota // zero value is invalid

	LicenseTypeA  // motorcycles only
	LicenseTypeB  // cars only, may not rent a motorcycle
	LicenseTypeAB // both categories
)

// ErrUnknownLicenseType indicates that a given string may not be
// parsed as a valid/known license category. The invalid string itself
// is not encoded in the error because the caller of Parse already
// knows about it and can wrap this error with that context.
var ErrUnknownLicenseType = errors.New(
	"unknown license type; valid types are A, B, and AB",
)

// LicenseTypeError indicates an invalid license category value,
// containing the invalid category as an integer.
type LicenseTypeError int

// Error implements the error interface, returning a string
// representation of the LicenseTypeError.
func (e LicenseTypeError) Error() string {
	return fmt.Sprintf("invalid license type: %d", e)
}

// Validate returns nil if the LicenseType value is valid. For invalid
// values, an instance of the LicenseTypeError will be returned.
func (t LicenseType) Validate() error {
	switch t {
	case LicenseTypeA, LicenseTypeB, LicenseTypeAB:
		return nil
	default:
		return LicenseTypeError(t)
	}
}

// String converts the LicenseType enum to a string, helping to
// serialize it for transmission to web clients. Invalid license
// types cause a panic.
func (t LicenseType) String() string {
	switch t {
	case LicenseTypeA:
		return "A"
	case LicenseTypeB:
		return "B"
	case LicenseTypeAB:
		return "AB"
	default:
		panic(LicenseTypeError(t))
	}
}

// MarshalText implements encoding.TextMarshaler, so the enum appears
// as its category string in JSON responses.
func (t LicenseType) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// ParseLicenseType parses the given string and returns a LicenseType,
// helping to deserialize it when reading a REST API request.
// The match is case-insensitive. For invalid strings,
// LicenseTypeInvalid and ErrUnknownLicenseType will be returned.
func ParseLicenseType(t string) (LicenseType, error) {
	switch strings.ToUpper(t) {
	case "A":
		return LicenseTypeA, nil
	case "B":
		return LicenseTypeB, nil
	case "AB":
		return LicenseTypeAB, nil
	default:
		return LicenseTypeInvalid, ErrUnknownLicenseType
	}
}
