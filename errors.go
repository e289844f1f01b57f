package payview

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every error caused by a malformed input:
// an unknown filter value, a non positive user id, a bad page size, a
// negative or non finite amount.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
