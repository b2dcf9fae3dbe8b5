package checkpoint

import (
	"context"
	"time"

	"github.com/google/uuid"

	"familysync/internal/model"
	"familysync/internal/repository"
)

func newTaskListHandler() RecordHandler {
	return &recordHandler[model.TaskList]{
		table: repository.Tx.TaskLists,
		audit: func(l *model.TaskList) *model.Audit { return &l.Audit },
		fields: []field[model.TaskList]{
			ref("family_id", func(l *model.TaskList) **uuid.UUID { return &l.FamilyID }),
			text("name", func(l *model.TaskList) *string { return &l.Name }),
			optText("sort_by", func(l *model.TaskList) **string { return &l.SortBy }),
			instant("last_activity_at", func(l *model.TaskList) **time.Time { return &l.LastActivityAt }),
		},
		init: func(l *model.TaskList) {
			sortBy := model.DefaultSortBy
			l.SortBy = &sortBy
		},
		beforePut: func(_ context.Context, s Scope, l *model.TaskList) error {
			if l.LastActivityAt == nil {
				l.Touch(s.Now)
			}
			return nil
		},
		afterPut: syncListTasks,
	}
}

// syncListTasks moves the list's tasks into the list's family.
func syncListTasks(ctx context.Context, s Scope, l *model.TaskList) error {
	if l.FamilyID == nil {
		return nil
	}
	tasks := s.Tx.Tasks()
	owned, err := tasks.ByList(ctx, l.ID)
	if err != nil {
		return err
	}
	for i := range owned {
		t := &owned[i]
		if sameRef(t.FamilyID, l.FamilyID) {
			continue
		}
		t.FamilyID = cloneRef(l.FamilyID)
		t.StampUpdate(s.Now, s.Actor)
		if err := tasks.Put(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
