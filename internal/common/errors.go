// Package common defines shared constants and sentinel errors used across
// FitTrack client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Session-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")

	// Transport-level errors. ErrNoResponse covers both "no response
	// received" and a 2xx reply whose body is unusable.
	ErrNoResponse = errors.New("no valid response received")
)
