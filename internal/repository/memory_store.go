package repository

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"familysync/internal/model"
)

// MemoryStore keeps every table in maps. A transaction works on a copy of
// the maps and swaps it in on commit, so a failed unit of work leaves no
// trace. Transactions are serialized.
//
// Records are copied shallowly: pointer fields are shared with the caller
// and must be replaced, not written through.
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState
}

var (
	_ Store           = (*MemoryStore)(nil)
	_ MemberDirectory = (*MemoryStore)(nil)
)

type memoryState struct {
	families  map[uuid.UUID]model.Family
	members   map[uuid.UUID]model.Member
	taskLists map[uuid.UUID]model.TaskList
	tasks     map[uuid.UUID]model.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: memoryState{
		families:  map[uuid.UUID]model.Family{},
		members:   map[uuid.UUID]model.Member{},
		taskLists: map[uuid.UUID]model.TaskList{},
		tasks:     map[uuid.UUID]model.Task{},
	}}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		families:  maps.Clone(s.families),
		members:   maps.Clone(s.members),
		taskLists: maps.Clone(s.taskLists),
		tasks:     maps.Clone(s.tasks),
	}
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(memoryTx{state: &work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.state.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.state.members {
		if m.Email != nil && strings.EqualFold(*m.Email, email) {
			return &m, nil
		}
	}
	return nil, nil
}

type memoryTx struct {
	state *memoryState
}

func (t memoryTx) Families() Table[model.Family] {
	return memoryTable[model.Family]{rows: t.state.families}
}

func (t memoryTx) Members() Table[model.Member] {
	return memoryTable[model.Member]{rows: t.state.members}
}

func (t memoryTx) TaskLists() Table[model.TaskList] {
	return memoryTable[model.TaskList]{rows: t.state.taskLists}
}

func (t memoryTx) Tasks() TaskTable {
	return memoryTaskTable{memoryTable[model.Task]{rows: t.state.tasks}}
}

type memoryTable[T model.Record] struct {
	rows map[uuid.UUID]T
}

func (m memoryTable[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m memoryTable[T]) Put(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(rec); err != nil {
		return err
	}
	m.rows[(*rec).RecordID()] = *rec
	return nil
}

func (m memoryTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	delete(m.rows, id)
	return nil
}

type memoryTaskTable struct {
	memoryTable[model.Task]
}

func (m memoryTaskTable) ByList(ctx context.Context, listID uuid.UUID) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var tasks []model.Task
	for _, t := range m.rows {
		if t.TaskListID != nil && *t.TaskListID == listID {
			tasks = append(tasks, t)
		}
	}
	slices.SortFunc(tasks, func(a, b model.Task) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return tasks, nil
}
