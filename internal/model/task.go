package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a leaf item of a TaskList. FamilyID duplicates the list's family so
// row-level sync rules can filter tasks by family without a join.
type Task struct {
	Audit

	Title       string     `gorm:"not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	FamilyID    *uuid.UUID `gorm:"type:uuid;not null" json:"family_id"`
	TaskListID  *uuid.UUID `gorm:"type:uuid;not null;index:idx_task_list_completed,priority:1" json:"task_list_id"`
	IsCompleted bool       `gorm:"not null;default:false;index:idx_task_list_completed,priority:2" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy *uuid.UUID `gorm:"type:uuid" json:"completed_by,omitempty"`

	TaskDate     *time.Time `gorm:"type:date" json:"task_date,omitempty"`
	TaskTime     *string    `gorm:"type:time" json:"task_time,omitempty"`
	TaskDateTime *time.Time `json:"task_date_time,omitempty"`

	RecurrenceCron        *string    `json:"recurrence_cron,omitempty"`
	RecurringParentTaskID *uuid.UUID `gorm:"type:uuid" json:"recurring_parent_task_id,omitempty"`
	SubTaskOfID           *uuid.UUID `gorm:"type:uuid" json:"sub_task_of_id,omitempty"`
	Position              *int       `json:"position,omitempty"`

	AssignedTo *uuid.UUID `gorm:"type:uuid" json:"assigned_to,omitempty"`
	AssignedBy *uuid.UUID `gorm:"type:uuid" json:"assigned_by,omitempty"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
}

func (Task) TableName() string { return "task" }

// Validate reports missing required back-references.
func (t *Task) Validate() error {
	if t.TaskListID == nil {
		return &ConstraintError{Table: t.TableName(), Column: "task_list_id"}
	}
	if t.FamilyID == nil {
		return &ConstraintError{Table: t.TableName(), Column: "family_id"}
	}
	return nil
}

// SetCompleted applies a completion flag change. The completion stamp is
// set when the flag turns true and cleared when it turns false; re-sending
// the current value leaves the stamp alone.
func (t *Task) SetCompleted(done bool, now time.Time, actor *uuid.UUID) {
	switch {
	case done && !t.IsCompleted:
		t.CompletedAt = &now
		t.CompletedBy = copyID(actor)
	case done && t.CompletedAt == nil:
		t.CompletedAt = &now
	case !done:
		t.CompletedAt = nil
		t.CompletedBy = nil
	}
	t.IsCompleted = done
}
