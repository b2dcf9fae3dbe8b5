// Package checkpoint applies client write checkpoints to the record store.
//
// A checkpoint is an ordered list of PUT, PATCH and DELETE operations
// against named tables. The whole checkpoint runs in one store transaction:
// either every operation is applied or, on the first failure, none is.
package checkpoint

import (
	"context"
	"log/slog"
	"time"

	"familysync/internal/identity"
	"familysync/internal/repository"
)

// Applier applies checkpoints against a store.
type Applier struct {
	store    repository.Store
	registry *Registry
	newID    identity.Generator
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Applier.
type Option func(*Applier)

// WithRegistry replaces the default table registry.
func WithRegistry(r *Registry) Option {
	return func(a *Applier) { a.registry = r }
}

// WithIDGenerator sets how ids are minted for PUTs without one.
func WithIDGenerator(g identity.Generator) Option {
	return func(a *Applier) { a.newID = g }
}

// WithClock sets the source of operation timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Applier) { a.now = now }
}

// WithLogger sets the logger for skipped operations and outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(a *Applier) { a.logger = l }
}

// NewApplier returns an Applier over store using DefaultRegistry, UUIDv7 ids,
// the wall clock and slog.Default unless opts say otherwise.
func NewApplier(store repository.Store, opts ...Option) *Applier {
	a := &Applier{
		store:    store,
		registry: DefaultRegistry(),
		newID:    identity.New,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply runs ops in order inside a single transaction. Later operations see
// the writes of earlier ones. Operations on unknown tables, and unknown op
// kinds, are skipped and left out of the results. On the first failing
// operation Apply stops, rolls the transaction back and returns an
// *OperationError; nothing from the checkpoint is persisted.
func (a *Applier) Apply(ctx context.Context, caller Caller, ops []Operation) ([]OpResult, error) {
	var results []OpResult
	err := a.store.InTx(ctx, func(tx repository.Tx) error {
		results = make([]OpResult, 0, len(ops))
		for i, op := range ops {
			h, ok := a.registry.Lookup(op.Table)
			if !ok {
				a.logger.Warn("skipping operation on unknown table", "index", i, "table", op.Table, "op", op.Op)
				continue
			}

			s := Scope{Tx: tx, Now: a.now(), Actor: caller.MemberID}
			applied, err := a.dispatch(ctx, s, h, op)
			if err != nil {
				return &OperationError{Index: i, Op: op.Op, Table: op.Table, Err: err}
			}
			if applied {
				results = append(results, OpResult{Op: op.Op, Table: op.Table, Success: true})
			}
		}
		return nil
	})
	if err != nil {
		a.logger.Error("checkpoint rejected", "member_id", caller.MemberID, "operations", len(ops), "error", err)
		return nil, err
	}

	a.logger.Info("checkpoint applied",
		"member_id", caller.MemberID,
		"family_id", caller.FamilyID,
		"operations", len(ops),
		"processed", len(results))
	return results, nil
}

func (a *Applier) dispatch(ctx context.Context, s Scope, h RecordHandler, op Operation) (bool, error) {
	switch op.Op {
	case OpPut, OpPatch, OpDelete:
	default:
		a.logger.Warn("skipping unknown operation", "op", op.Op, "table", op.Table)
		return false, nil
	}

	id, present, err := op.Data.ID()
	if err != nil {
		return false, err
	}
	if !present && op.Op != OpPut {
		return false, &DecodeError{Field: "id", Err: errMissing}
	}

	switch op.Op {
	case OpPut:
		if !present {
			id = a.newID()
		}
		_, err = h.Create(ctx, s, id, op.Data)
	case OpPatch:
		_, err = h.Merge(ctx, s, id, op.Data)
	case OpDelete:
		err = h.Remove(ctx, s, id)
	}
	return err == nil, err
}
