package checkpoint

import (
	"fmt"

	"github.com/google/uuid"
)

// Op is an operation kind. Values are case-sensitive on the wire.
type Op string

const (
	OpPut    Op = "PUT"
	OpPatch  Op = "PATCH"
	OpDelete Op = "DELETE"
)

// Operation is one client mutation of a checkpoint.
type Operation struct {
	Op    Op      `json:"op" binding:"required"`
	Table string  `json:"table" binding:"required"`
	Data  Payload `json:"data"`
}

// OpResult reports an applied operation.
type OpResult struct {
	Op      Op     `json:"op"`
	Table   string `json:"table"`
	Success bool   `json:"success"`
}

// Caller identifies who submitted a checkpoint. Both ids are optional.
type Caller struct {
	MemberID *uuid.UUID
	FamilyID *uuid.UUID
}

// OperationError wraps the failure of the operation at Index.
type OperationError struct {
	Index int
	Op    Op
	Table string
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %v", e.Index, e.Op, e.Table, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
