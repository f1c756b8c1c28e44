package serviceimpl

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

func TestFieldChange(t *testing.T) {
	taskID := uuid.New()
	actorID := uuid.New()

	sp := func(s string) *string { return &s }

	tests := []struct {
		name        string
		field       string
		oldVal      *string
		newVal      *string
		wantEntry   bool
		wantDesc    string
	}{
		{"both nil", "dueDate", nil, nil, false, ""},
		{"equal values", "status", sp("TODO"), sp("TODO"), false, ""},
		{"changed value", "status", sp("TODO"), sp("DONE"), true, "Changed status from 'TODO' to 'DONE'"},
		{"set from nil", "assigneeId", nil, sp("abc"), true, "Changed assigneeId from 'null' to 'abc'"},
		{"cleared to nil", "dueDate", sp("2025-01-01T00:00:00Z"), nil, true, "Changed dueDate from '2025-01-01T00:00:00Z' to 'null'"},
		{"empty vs nil differ", "title", sp(""), nil, true, "Changed title from '' to 'null'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := fieldChange(taskID, tt.field, tt.oldVal, tt.newVal, actorID)
			if !tt.wantEntry {
				if entry != nil {
					t.Fatalf("expected no entry, got %+v", entry)
				}
				return
			}
			if entry == nil {
				t.Fatal("expected an entry, got nil")
			}
			if entry.FieldName != tt.field {
				t.Errorf("field = %q, want %q", entry.FieldName, tt.field)
			}
			if entry.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", entry.Description, tt.wantDesc)
			}
			if entry.ChangeType != models.ChangeTypeUpdate {
				t.Errorf("change type = %q, want UPDATE", entry.ChangeType)
			}
			if entry.ChangedBy != actorID {
				t.Errorf("changed by = %v, want %v", entry.ChangedBy, actorID)
			}
		})
	}
}

func TestFieldChangesOnlyDiffs(t *testing.T) {
	taskID := uuid.New()
	actorID := uuid.New()

	task := &models.Task{
		Title:    "Write report",
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
		Tags:     models.TagList{},
	}
	before := snapshotFields(task)

	task.Status = models.TaskStatusInProgress
	task.Priority = models.TaskPriorityHigh
	after := snapshotFields(task)

	entries := fieldChanges(taskID, before, after, actorID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// trackedFields order: status before priority
	if entries[0].FieldName != "status" {
		t.Errorf("first entry = %q, want status", entries[0].FieldName)
	}
	if entries[1].FieldName != "priority" {
		t.Errorf("second entry = %q, want priority", entries[1].FieldName)
	}
}

func TestFieldChangesIdenticalSnapshots(t *testing.T) {
	task := &models.Task{
		Title:    "Write report",
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
	}

	entries := fieldChanges(uuid.New(), snapshotFields(task), snapshotFields(task), uuid.New())
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestSnapshotFieldsRendering(t *testing.T) {
	assignee := uuid.New()
	due := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	task := &models.Task{
		Title:        "Write report",
		Description:  "quarterly numbers",
		Status:       models.TaskStatusTodo,
		Priority:     models.TaskPriorityLow,
		AssigneeID:   &assignee,
		DueDate:      &due,
		Tags:         models.TagList{"finance", "q1"},
		CustomFields: models.CustomFieldMap{"points": float64(3)},
	}

	snap := snapshotFields(task)

	if got := *snap["assigneeId"]; got != assignee.String() {
		t.Errorf("assigneeId = %q, want %q", got, assignee.String())
	}
	if got := *snap["dueDate"]; got != "2025-03-01T12:30:00Z" {
		t.Errorf("dueDate = %q, want RFC3339 UTC", got)
	}
	if snap["startDate"] != nil {
		t.Errorf("startDate should be nil when unset")
	}
	if got := *snap["tags"]; got != `["finance","q1"]` {
		t.Errorf("tags = %q", got)
	}
	if got := *snap["customFields"]; got != `{"points":3}` {
		t.Errorf("customFields = %q", got)
	}
}
