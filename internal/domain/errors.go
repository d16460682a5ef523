package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without
// leaking infrastructure details. "No such user" from the directory is
// ErrNotFound; any other directory failure is transient and maps to 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")

	// Verification outcomes. Distinct from ErrNotFound so the caller can tell
	// "request a new code" apart from "retype the code".
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeMismatch = errors.New("incorrect verification code")
)
