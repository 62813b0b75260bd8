package diagnostic

import "errors"

// ErrInvalidInput is returned for empty answer sets, out-of-range scores and
// malformed phase answers.
var ErrInvalidInput = errors.New("invalid input")
