package model

import "fmt"

// ConstraintError reports a record that violates a NOT NULL column.
type ConstraintError struct {
	Table  string
	Column string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s.%s must not be null", e.Table, e.Column)
}
