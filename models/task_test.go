package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaskStyleValueScan(t *testing.T) {
	style := TaskStyle{IsBold: true, IsItalic: false}

	value, err := style.Value()
	assert.NoError(t, err)

	var restored TaskStyle
	assert.NoError(t, restored.Scan(value))
	assert.Equal(t, style, restored)
}

func TestTaskStyleScanNil(t *testing.T) {
	restored := TaskStyle{IsBold: true}
	assert.NoError(t, restored.Scan(nil))
	assert.Equal(t, TaskStyle{}, restored)
}

func TestTaskStyleScanString(t *testing.T) {
	var restored TaskStyle
	assert.NoError(t, restored.Scan(`{"isBold":false,"isItalic":true}`))
	assert.True(t, restored.IsItalic)
}

func TestTaskIsTopLevel(t *testing.T) {
	top := Task{ID: uuid.New()}
	assert.True(t, top.IsTopLevel())

	child := Task{ID: uuid.New(), ParentID: top.ID}
	assert.False(t, child.IsTopLevel())
}

func TestTaskJSONFieldNames(t *testing.T) {
	task := Task{ID: uuid.New(), UserID: uuid.New(), Title: "Buy milk", Deadline: "2024-01-01"}

	data, err := json.Marshal(task)
	assert.NoError(t, err)

	var raw map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "ownerId", "title", "deadline", "parentId", "isCompleted", "style"} {
		assert.Contains(t, raw, key)
	}
}
