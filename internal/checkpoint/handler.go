package checkpoint

import (
	"context"
	"time"

	"github.com/google/uuid"

	"familysync/internal/model"
	"familysync/internal/repository"
)

// Scope is what a handler sees of the running checkpoint: the open
// transaction, the instant the operation started, and the member it is
// applied for (nil when unknown).
type Scope struct {
	Tx    repository.Tx
	Now   time.Time
	Actor *uuid.UUID
}

// RecordHandler applies operations to one record type.
type RecordHandler interface {
	// Create builds a new record from p and upserts it, replacing every
	// column of an existing record with the same id.
	Create(ctx context.Context, s Scope, id uuid.UUID, p Payload) (model.Record, error)
	// Merge overwrites only the fields present in p. It returns nil, nil
	// when no record has the id.
	Merge(ctx context.Context, s Scope, id uuid.UUID, p Payload) (model.Record, error)
	// Remove deletes the record if it exists.
	Remove(ctx context.Context, s Scope, id uuid.UUID) error
}

// recordHandler is the shared create/merge/remove flow. The per-type hooks
// run in this order on every write:
//
//	fields -> beforePut -> audit stamp -> Put -> afterPut
type recordHandler[T model.Record] struct {
	table  func(repository.Tx) repository.Table[T]
	audit  func(*T) *model.Audit
	fields []field[T]

	// init sets column defaults on a freshly built record.
	init func(rec *T)
	// keep copies server-owned columns from the stored record onto its
	// replacement. p is the payload the replacement was built from.
	keep func(rec, prev *T, p Payload)
	// beforePut derives columns from other records or from the scope.
	beforePut func(ctx context.Context, s Scope, rec *T) error
	// afterPut updates other records that depend on this one.
	afterPut func(ctx context.Context, s Scope, rec *T) error
}

func (h *recordHandler[T]) Create(ctx context.Context, s Scope, id uuid.UUID, p Payload) (model.Record, error) {
	rec := new(T)
	h.audit(rec).ID = id
	if h.init != nil {
		h.init(rec)
	}
	if err := applyFields(rec, p, s, h.fields); err != nil {
		return nil, err
	}

	prev, err := h.table(s.Tx).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		h.audit(rec).Inherit(*h.audit(prev))
		if h.keep != nil {
			h.keep(rec, prev, p)
		}
	}
	if err := h.write(ctx, s, rec, prev == nil); err != nil {
		return nil, err
	}
	return *rec, nil
}

func (h *recordHandler[T]) Merge(ctx context.Context, s Scope, id uuid.UUID, p Payload) (model.Record, error) {
	rec, err := h.table(s.Tx).Get(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	if err := applyFields(rec, p, s, h.fields); err != nil {
		return nil, err
	}
	if err := h.write(ctx, s, rec, false); err != nil {
		return nil, err
	}
	return *rec, nil
}

func (h *recordHandler[T]) Remove(ctx context.Context, s Scope, id uuid.UUID) error {
	return h.table(s.Tx).Delete(ctx, id)
}

func (h *recordHandler[T]) write(ctx context.Context, s Scope, rec *T, created bool) error {
	if h.beforePut != nil {
		if err := h.beforePut(ctx, s, rec); err != nil {
			return err
		}
	}
	if created {
		h.audit(rec).StampCreate(s.Now, s.Actor)
	} else {
		h.audit(rec).StampUpdate(s.Now, s.Actor)
	}
	if err := h.table(s.Tx).Put(ctx, rec); err != nil {
		return err
	}
	if h.afterPut != nil {
		return h.afterPut(ctx, s, rec)
	}
	return nil
}
