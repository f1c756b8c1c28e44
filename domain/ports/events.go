package ports

import (
	"context"
	"time"
)

// Task event types published on the message bus.
const (
	TaskEventCreated = "created"
	TaskEventUpdated = "updated"
	TaskEventDeleted = "deleted"
	TaskEventOverdue = "overdue"
)

type TaskEvent struct {
	Type      string    `json:"type"`
	TaskID    string    `json:"taskId"`
	ProjectID string    `json:"projectId"`
	ActorID   string    `json:"actorId,omitempty"`
	Version   int       `json:"version,omitempty"`
	Fields    []string  `json:"fields,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher pushes task events to interested consumers. Publishing is
// best effort; mutations never fail because the bus is down.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
}
