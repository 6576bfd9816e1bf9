package services

import "errors"

// ErrNotFound is returned by GetByID/Update when no row matches the id.
// Delete intentionally does not return it; a missing row there is reported
// as a nil record so handlers can answer with a "not found" envelope.
var ErrNotFound = errors.New("record not found")

// ErrValidation marks input the caller should report as a 400.
var ErrValidation = errors.New("invalid input")
