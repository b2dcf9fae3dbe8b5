package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"familysync/internal/model"
)

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// InTx wraps fn in a database transaction that commits only if fn succeeds.
func (s *GormStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormTx{db: tx})
	})
}

// AutoMigrate creates or extends the synced tables.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&model.Family{}, &model.Member{}, &model.TaskList{}, &model.Task{})
}

type gormTx struct {
	db *gorm.DB
}

func (t gormTx) Families() Table[model.Family] { return &GormTable[model.Family]{db: t.db} }
func (t gormTx) Members() Table[model.Member] { return &GormTable[model.Member]{db: t.db} }
func (t gormTx) TaskLists() Table[model.TaskList] { return &GormTable[model.TaskList]{db: t.db} }
func (t gormTx) Tasks() TaskTable { return &GormTaskTable{GormTable[model.Task]{db: t.db}} }

// GormTable implements Table for one gorm model.
type GormTable[T any] struct {
	db *gorm.DB
}

func NewGormTable[T any](db *gorm.DB) *GormTable[T] {
	return &GormTable[T]{db: db}
}

func (r *GormTable[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put upserts on the primary key so a replayed PUT overwrites the row.
func (r *GormTable[T]) Put(ctx context.Context, rec *T) error {
	if err := validate(rec); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
}

func (r *GormTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var rec T
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&rec).Error
}

// GormTaskTable is the task table with its by-list query.
type GormTaskTable struct {
	GormTable[model.Task]
}

func (r *GormTaskTable) ByList(ctx context.Context, listID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("task_list_id = ?", listID).Order("id").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
