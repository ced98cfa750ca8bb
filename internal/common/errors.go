package common

import "errors"

// Sentinel errors shared by the repository, service and handler layers.
// Lower layers wrap them with the offending key so handlers can map the
// kind to a status code while the message still says what went wrong.
var (
	ErrValidation = errors.New("invalid document")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrReferenced = errors.New("still referenced")
	ErrForbidden  = errors.New("forbidden")
)
