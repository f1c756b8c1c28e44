package serviceimpl

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

// trackedFields are the mutable task fields the audit trail covers, in the
// order entries are written for a single mutation.
var trackedFields = []string{
	"title",
	"description",
	"status",
	"priority",
	"assigneeId",
	"startDate",
	"dueDate",
	"tags",
	"customFields",
}

// snapshotFields renders the tracked fields of a task as audit strings.
// nil marks an absent value (unassigned, no date).
func snapshotFields(task *models.Task) map[string]*string {
	return map[string]*string{
		"title":        strPtr(task.Title),
		"description":  strPtr(task.Description),
		"status":       strPtr(string(task.Status)),
		"priority":     strPtr(string(task.Priority)),
		"assigneeId":   renderUUID(task.AssigneeID),
		"startDate":    renderTime(task.StartDate),
		"dueDate":      renderTime(task.DueDate),
		"tags":         renderJSON(task.Tags),
		"customFields": renderJSON(task.CustomFields),
	}
}

func strPtr(s string) *string {
	return &s
}

func renderUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func renderTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func renderJSON(v any) *string {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// fieldChange builds an UPDATE history entry for one field, or nil when the
// values are equal (both absent included).
func fieldChange(taskID uuid.UUID, field string, oldVal, newVal *string, actorID uuid.UUID) *models.TaskHistory {
	if oldVal == nil && newVal == nil {
		return nil
	}
	if oldVal != nil && newVal != nil && *oldVal == *newVal {
		return nil
	}

	return &models.TaskHistory{
		ID:          uuid.New(),
		TaskID:      taskID,
		FieldName:   field,
		OldValue:    oldVal,
		NewValue:    newVal,
		ChangedBy:   actorID,
		ChangeType:  models.ChangeTypeUpdate,
		ChangedAt:   time.Now(),
		Description: fmt.Sprintf("Changed %s from '%s' to '%s'", field, nullable(oldVal), nullable(newVal)),
	}
}

// fieldChanges diffs two snapshots across all tracked fields.
func fieldChanges(taskID uuid.UUID, before, after map[string]*string, actorID uuid.UUID) []*models.TaskHistory {
	var entries []*models.TaskHistory
	for _, field := range trackedFields {
		if entry := fieldChange(taskID, field, before[field], after[field], actorID); entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// eventEntry builds a non-field history entry (CREATE, COMMENT_ADDED, ...).
func eventEntry(taskID uuid.UUID, changeType models.ChangeType, field, description string, actorID uuid.UUID) *models.TaskHistory {
	return &models.TaskHistory{
		ID:          uuid.New(),
		TaskID:      taskID,
		FieldName:   field,
		ChangedBy:   actorID,
		ChangeType:  changeType,
		ChangedAt:   time.Now(),
		Description: description,
	}
}

// nullable renders an absent value as the literal "null"; existing clients
// parse that exact string out of descriptions.
func nullable(v *string) string {
	if v == nil {
		return "null"
	}
	return *v
}
