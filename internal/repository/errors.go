package repository

import (
	"errors"
	"fmt"
)

// ErrIntegrity is returned when a write would violate a store constraint.
var ErrIntegrity = errors.New("integrity violation")

// validate runs a record's own constraint check, if it has one.
func validate(rec any) error {
	v, ok := rec.(interface{ Validate() error })
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	return nil
}
