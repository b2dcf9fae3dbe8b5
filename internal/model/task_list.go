package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSortBy is the ordering mode of a list created without one.
const DefaultSortBy = "custom"

type TaskList struct {
	Audit

	FamilyID       *uuid.UUID `gorm:"type:uuid;not null;index:idx_task_list_family_id" json:"family_id"`
	Name           string     `gorm:"not null" json:"name"`
	SortBy         *string    `json:"sort_by,omitempty"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

func (TaskList) TableName() string { return "task_list" }

// Validate reports a missing owning family.
func (l *TaskList) Validate() error {
	if l.FamilyID == nil {
		return &ConstraintError{Table: l.TableName(), Column: "family_id"}
	}
	return nil
}

// Touch refreshes the list's activity timestamp.
func (l *TaskList) Touch(now time.Time) {
	l.LastActivityAt = &now
}
