package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks request validation failures. Handlers map it to 400.
var ErrInvalidArgument = errors.New("invalid argument")

// Invalidf formats a validation failure that wraps ErrInvalidArgument.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
