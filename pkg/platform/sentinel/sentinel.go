package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these
// (optionally wrapped) so services can translate them into coded domain
// errors without depending on a concrete store.
//
// These represent factual states about resources, not validation
// failures:
// - ErrNotFound: entity does not exist in the store
// - ErrConflict: uniqueness constraint violated
// - ErrUnavailable: storage temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
