package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and lookups return these
// (optionally wrapped) so callers can translate them into user-facing
// behavior.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in a store or registry
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
