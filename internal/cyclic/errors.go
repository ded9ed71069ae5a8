package cyclic

import cyclicerr "github.com/mrz1836/cyclic/pkg/errors"

var (
	// ErrInvalidCodeParams is returned unless 0 < k < n <= 64.
	ErrInvalidCodeParams = cyclicerr.ErrInvalidCodeParams

	// ErrInvalidGeneratorDegree is returned when degree(g) != n - k.
	ErrInvalidGeneratorDegree = cyclicerr.ErrInvalidGeneratorDegree

	// ErrAmbiguousSyndromeTable is returned when two error positions share a
	// syndrome, or a position has the zero syndrome.
	ErrAmbiguousSyndromeTable = cyclicerr.ErrAmbiguousSyndromeTable

	// ErrInvalidMessageLength is returned when a message is not k bits long.
	ErrInvalidMessageLength = cyclicerr.ErrInvalidMessageLength

	// ErrInvalidReceivedLength is returned when a received word is not n bits long.
	ErrInvalidReceivedLength = cyclicerr.ErrInvalidReceivedLength

	// ErrTooLargeToEnumerate is returned when an exhaustive walk over the
	// message space is requested for a k that is too large.
	ErrTooLargeToEnumerate = cyclicerr.ErrTooLargeToEnumerate
)
