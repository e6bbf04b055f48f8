package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks failures caused by the caller's data rather than the computation.
// Boundaries map it to a client error.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsInvalidInput reports whether err was caused by invalid caller data.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
