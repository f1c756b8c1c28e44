package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskStatus lifecycle state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskPriority urgency level of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// TagList is an ordered list of free-form tags stored as jsonb.
type TagList []string

// Scan implements sql.Scanner for TagList
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// Value implements driver.Valuer for TagList
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

// CustomFieldMap holds caller-defined task fields stored as jsonb.
// Values decode to string/float64/bool/nil/nested per encoding/json.
type CustomFieldMap map[string]any

// Scan implements sql.Scanner for CustomFieldMap
func (m *CustomFieldMap) Scan(value interface{}) error {
	if value == nil {
		*m = CustomFieldMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value implements driver.Valuer for CustomFieldMap
func (m CustomFieldMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

type Task struct {
	ID           uuid.UUID      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title        string         `gorm:"size:255;not null"`
	Description  string         `gorm:"type:text"`
	Status       TaskStatus     `gorm:"size:20;not null;default:'TODO'"`
	Priority     TaskPriority   `gorm:"size:20;not null;default:'MEDIUM'"`
	ProjectID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	AssigneeID   *uuid.UUID     `gorm:"type:uuid"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;not null"`
	StartDate    *time.Time     `gorm:"type:timestamptz"`
	DueDate      *time.Time     `gorm:"type:timestamptz"`
	Version      int            `gorm:"not null;default:1"`
	LastEditedBy *uuid.UUID     `gorm:"type:uuid"`
	Tags         TagList        `gorm:"type:jsonb;default:'[]'"`
	CustomFields CustomFieldMap `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Project    Project `gorm:"foreignKey:ProjectID"`
	Assignee   *User   `gorm:"foreignKey:AssigneeID"`
	Creator    User    `gorm:"foreignKey:CreatedBy"`
	LastEditor *User   `gorm:"foreignKey:LastEditedBy"`
}

func (Task) TableName() string {
	return "tasks"
}
