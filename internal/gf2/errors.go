package gf2

import cyclicerr "github.com/mrz1836/cyclic/pkg/errors"

var (
	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = cyclicerr.ErrDivisionByZero

	// ErrPolyOverflow is returned when a result would not fit in a Poly.
	ErrPolyOverflow = cyclicerr.ErrPolyOverflow

	// ErrInvalidBits is returned when a bit vector holds values other than 0 and 1.
	ErrInvalidBits = cyclicerr.ErrInvalidBits

	// ErrDimensionMismatch is returned when matrix or vector shapes do not line up.
	ErrDimensionMismatch = cyclicerr.WithSuggestion(cyclicerr.ErrInvalidInput, "matrix dimensions do not match")
)
