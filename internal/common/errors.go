// Package common holds the constants and sentinel errors shared by the
// flashly client layers. Match the errors with errors.Is.
package common

import "errors"

var (
	ErrorNotFound = errors.New("not found")

	// ErrTransport means no HTTP response was received at all.
	ErrTransport = errors.New("server unreachable")

	// The server answered with a non-success status.
	ErrRemoteRejected = errors.New("request rejected by server")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired is reported for a cached JWT whose exp has passed.
	ErrTokenExpired = errors.New("token expired")
)
