package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStyle holds display-only flags. They have no behavioral effect on the
// server; they are stored and returned verbatim.
type TaskStyle struct {
	IsBold   bool `json:"isBold"`
	IsItalic bool `json:"isItalic"`
}

// Value implements the driver.Valuer interface for JSONB storage
func (ts TaskStyle) Value() (driver.Value, error) {
	return json.Marshal(ts)
}

// Scan implements the sql.Scanner interface for JSONB retrieval
func (ts *TaskStyle) Scan(value interface{}) error {
	if value == nil {
		*ts = TaskStyle{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}

	return json.Unmarshal(bytes, ts)
}

// Task is a single to-do item. ParentID is uuid.Nil for top-level tasks and
// references a top-level task of the same owner otherwise, so the hierarchy is
// at most two levels deep. The composite unique index over
// (user_id, title, deadline, parent_id) is what makes create idempotent: two
// racing inserts of the same tuple cannot both commit. uuid.Nil stands in for
// SQL NULL in parent_id so top-level tasks participate in the index too.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tasks_owner_tuple" json:"ownerId"`
	Title       string    `gorm:"not null;uniqueIndex:idx_tasks_owner_tuple" json:"title"`
	Deadline    string    `gorm:"not null;uniqueIndex:idx_tasks_owner_tuple" json:"deadline"`
	ParentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tasks_owner_tuple" json:"parentId"`
	IsCompleted bool      `gorm:"default:false" json:"isCompleted"`
	Style       TaskStyle `gorm:"type:jsonb" json:"style"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

// IsTopLevel reports whether the task can act as a parent.
func (t *Task) IsTopLevel() bool {
	return t.ParentID == uuid.Nil
}

// TaskPatch carries the updatable fields of a task. Nil fields are left
// untouched. ParentID is accepted on the wire only so reparenting attempts can
// be rejected explicitly rather than silently ignored.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Deadline    *string    `json:"deadline,omitempty"`
	IsCompleted *bool      `json:"isCompleted,omitempty"`
	Style       *TaskStyle `json:"style,omitempty"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
}
