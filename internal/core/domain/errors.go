package domain

import "errors"

// Cross-cutting request errors. Entity-specific sentinels live next to
// their types.

// ErrAuthRequired marks requests that reached a protected operation without
// an authenticated identity. Rejected before any item or data processing.
var ErrAuthRequired = errors.New("authentication required")

// ErrMalformedInput marks client input rejected before any data access:
// non-positive or non-integer quantities, empty references, and the like.
var ErrMalformedInput = errors.New("malformed input")
