// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package errkind defines the shared error taxonomy used across the
// address, transaction, and codec packages so callers can distinguish
// failure classes programmatically instead of matching on strings.
package errkind

import "fmt"

// Kind classifies why an operation failed.
type Kind uint8

// The error kinds a caller may need to branch on.
const (
	// InvalidLength means a buffer, string, seed, signature, or name
	// length did not match its required size.
	InvalidLength Kind = iota + 1

	// InvalidType means a setter received an argument not matching its
	// declared semantic type.
	InvalidType

	// InvalidRange means a numeric value fell outside its declared
	// interval.
	InvalidRange

	// InvalidField means a field was accessed that is not available in
	// the record's current version.
	InvalidField

	// FieldNotSet means a getter was called before the field was
	// written.
	FieldNotSet

	// FieldAlreadySet means the version field was written twice.
	FieldAlreadySet

	// InvalidPrefix means a prefix character fell out of range, the
	// prefix had the wrong length, or a reserved bit was set.
	InvalidPrefix

	// InvalidBech32 means a Bech32 string had mixed case, a missing
	// separator, an empty prefix, too little data, a bad checksum, or
	// bad padding.
	InvalidBech32
)

var names = map[Kind]string{
	InvalidLength:   "invalid length",
	InvalidType:     "invalid type",
	InvalidRange:    "invalid range",
	InvalidField:    "invalid field",
	FieldNotSet:     "field not set",
	FieldAlreadySet: "field already set",
	InvalidPrefix:   "invalid prefix",
	InvalidBech32:   "invalid bech32",
}

// String renders the kind's name for use in error messages.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown error kind"
}

// Error is the concrete error value returned by every component in
// this module. Component names the package that raised it (e.g.
// "transaction", "address") and Msg carries the offending detail.
type Error struct {
	Kind      Kind
	Component string
	Msg       string
}

// New builds an *Error for component with the given kind and detail.
func New(kind Kind, component, msg string) *Error {
	return &Error{Kind: kind, Component: component, Msg: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Component, e.Kind, e.Msg)
}

// Is reports whether err is an *Error of the given kind. It lets
// callers branch on failure class without depending on Component or
// Msg: `if errkind.Is(err, errkind.InvalidRange) { ... }`.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
