package repository

import (
	"context"

	"github.com/google/uuid"

	"familysync/internal/model"
)

// Table is primary-key access to one record type inside a transaction.
type Table[T any] interface {
	// Get returns nil, nil when no record has the id.
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	// Put inserts the record or replaces every column of the stored one.
	Put(ctx context.Context, rec *T) error
	// Delete removes the record; deleting a missing id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskTable adds the owning-list lookup to the task table.
type TaskTable interface {
	Table[model.Task]
	// ByList returns the tasks of a list ordered by id.
	ByList(ctx context.Context, listID uuid.UUID) ([]model.Task, error)
}

// Tx exposes the tables visible to one transaction.
type Tx interface {
	Families() Table[model.Family]
	Members() Table[model.Member]
	TaskLists() Table[model.TaskList]
	Tasks() TaskTable
}

// Store runs units of work atomically. If fn returns an error every write
// made through tx is discarded.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// MemberDirectory looks members up outside of a checkpoint.
type MemberDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
}
