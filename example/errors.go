package example

import "errors"

// ErrInvalidExpected is returned when an expected output value is not text.
var ErrInvalidExpected = errors.New("bad value for expected")
