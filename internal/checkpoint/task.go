package checkpoint

import (
	"context"
	"time"

	"github.com/google/uuid"

	"familysync/internal/model"
	"familysync/internal/repository"
)

func newTaskHandler() RecordHandler {
	return &recordHandler[model.Task]{
		table: func(tx repository.Tx) repository.Table[model.Task] { return tx.Tasks() },
		audit: func(t *model.Task) *model.Audit { return &t.Audit },
		fields: []field[model.Task]{
			text("title", func(t *model.Task) *string { return &t.Title }),
			optText("description", func(t *model.Task) **string { return &t.Description }),
			ref("task_list_id", func(t *model.Task) **uuid.UUID { return &t.TaskListID }),
			ref("family_id", func(t *model.Task) **uuid.UUID { return &t.FamilyID }),
			date("task_date", func(t *model.Task) **time.Time { return &t.TaskDate }),
			timeOfDay("task_time", func(t *model.Task) **string { return &t.TaskTime }),
			instant("task_date_time", func(t *model.Task) **time.Time { return &t.TaskDateTime }),
			optText("recurrence_cron", func(t *model.Task) **string { return &t.RecurrenceCron }),
			ref("recurring_parent_task_id", func(t *model.Task) **uuid.UUID { return &t.RecurringParentTaskID }),
			ref("sub_task_of_id", func(t *model.Task) **uuid.UUID { return &t.SubTaskOfID }),
			integer("position", func(t *model.Task) **int { return &t.Position }),
			{name: "assigned_to", set: assign},
			ref("assigned_by", func(t *model.Task) **uuid.UUID { return &t.AssignedBy }),
			instant("assigned_at", func(t *model.Task) **time.Time { return &t.AssignedAt }),
			{name: "is_completed", set: complete},
			instant("completed_at", func(t *model.Task) **time.Time { return &t.CompletedAt }),
			ref("completed_by", func(t *model.Task) **uuid.UUID { return &t.CompletedBy }),
		},
		keep:      keepCompletion,
		beforePut: syncTask,
		afterPut:  touchTaskList,
	}
}

// assign records who assigned the task and when, unless the payload says so
// itself through assigned_by/assigned_at, which are applied afterwards.
func assign(t *model.Task, v any, s Scope) error {
	id, err := decodeUUID("assigned_to", v)
	if err != nil {
		return err
	}
	if sameRef(t.AssignedTo, id) {
		return nil
	}
	t.AssignedTo = id
	if id == nil {
		t.AssignedBy, t.AssignedAt = nil, nil
		return nil
	}
	now := s.Now
	t.AssignedAt = &now
	t.AssignedBy = cloneRef(s.Actor)
	return nil
}

func complete(t *model.Task, v any, s Scope) error {
	done, err := decodeBool("is_completed", v)
	if err != nil {
		return err
	}
	t.SetCompleted(done, s.Now, s.Actor)
	return nil
}

// keepCompletion lets a replayed PUT of a completed task keep the original
// completion stamp unless the payload sends its own.
func keepCompletion(t, prev *model.Task, p Payload) {
	if !t.IsCompleted || !prev.IsCompleted {
		return
	}
	if !p.Has("completed_at") {
		t.CompletedAt = prev.CompletedAt
	}
	if !p.Has("completed_by") {
		t.CompletedBy = prev.CompletedBy
	}
}

// syncTask re-establishes the task's own invariants: completion columns
// follow the flag, and the family always matches the owning list's.
func syncTask(ctx context.Context, s Scope, t *model.Task) error {
	if !t.IsCompleted {
		t.CompletedAt, t.CompletedBy = nil, nil
	} else if t.CompletedAt == nil {
		now := s.Now
		t.CompletedAt = &now
	}

	if t.TaskListID == nil {
		return nil
	}
	list, err := s.Tx.TaskLists().Get(ctx, *t.TaskListID)
	if err != nil || list == nil {
		return err
	}
	if list.FamilyID != nil {
		t.FamilyID = cloneRef(list.FamilyID)
	}
	return nil
}

// touchTaskList marks activity on the list that owns t.
func touchTaskList(ctx context.Context, s Scope, t *model.Task) error {
	if t.TaskListID == nil {
		return nil
	}
	lists := s.Tx.TaskLists()
	list, err := lists.Get(ctx, *t.TaskListID)
	if err != nil || list == nil {
		return err
	}
	list.Touch(s.Now)
	list.StampUpdate(s.Now, s.Actor)
	return lists.Put(ctx, list)
}

func sameRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneRef(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
