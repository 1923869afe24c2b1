package services

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected before any write.
var ErrValidation = errors.New("validation failed")

// ErrNoTickets is returned for a ticket sale with no visitors.
var ErrNoTickets = fmt.Errorf("%w: at least one ticket is required", ErrValidation)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
