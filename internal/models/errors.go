package models

import "errors"

// Error taxonomy for the location service. Callers branch with errors.Is;
// handlers translate to HTTP statuses.
var (
	// ErrNotAuthenticated is returned when a mutation is attempted without
	// a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the caller is authenticated but not the
	// owner and holds no sufficient share level.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when no record exists in the remote or
	// fallback stores.
	ErrNotFound = errors.New("not found")

	// ErrShareExpired is returned when a token resolves to a share row that
	// is past its expiry. Distinct from ErrNotFound and ErrForbidden.
	ErrShareExpired = errors.New("share link expired")

	// ErrUpstreamUnavailable marks a transient backend failure. Reads
	// degrade to fallbacks on it; writes surface it.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrDemoImmutable is returned for deletion attempts against built-in
	// seed locations.
	ErrDemoImmutable = errors.New("demo locations cannot be deleted")
)
