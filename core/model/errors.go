package model

import "errors"

// ErrInvalidInput marks requests rejected before any prediction work
// starts: malformed coordinates, non-positive horizons, unknown vehicle or
// interior modes. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
