package services

import (
	"encoding/json"
	"testing"
	"time"

	"dueday/dueday/models"
	"dueday/dueday/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMutationsWriteOutboxEvents(t *testing.T) {
	db, close := testutils.SetupSqliteDB()
	defer close()

	owner := seedUser(t, db, "owner@example.com")
	taskService := &TaskService{}

	task, err := taskService.CreateTask(db, owner.ID, "Buy milk", "2024-01-01", uuid.Nil, models.TaskStyle{})
	assert.NoError(t, err)

	completed := true
	_, err = taskService.UpdateTask(db, owner.ID, task.ID.String(), models.TaskPatch{IsCompleted: &completed})
	assert.NoError(t, err)

	assert.NoError(t, taskService.DeleteTask(db, owner.ID, task.ID.String()))

	var events []models.Event
	assert.NoError(t, db.DB.Where("entity = ?", "task").Order("timestamp").Find(&events).Error)
	assert.Len(t, events, 3)
	assert.Equal(t, "task.created", events[0].Event)
	assert.Equal(t, "task.updated", events[1].Event)
	assert.Equal(t, "task.deleted", events[2].Event)

	for _, event := range events {
		assert.False(t, event.Dispatched, "events stay pending until the dispatcher drains them")

		var data map[string]interface{}
		assert.NoError(t, json.Unmarshal(event.Data, &data))
		assert.Equal(t, task.ID.String(), data["task_id"])
	}
}

func TestEventHandlerStopReleasesDrainLoop(t *testing.T) {
	db, close := testutils.SetupSqliteDB()
	defer close()

	handler := NewEventHandlerService(db).(*EventHandlerService)
	handler.Start()

	handler.mu.Lock()
	done := handler.done
	handler.mu.Unlock()
	assert.NotNil(t, done)

	handler.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drain loop was not released on Stop")
	}

	// Redundant stops and a stop on a never-started handler must be no-ops.
	handler.Stop()
	NewEventHandlerService(db).(*EventHandlerService).Stop()
}

func TestEventHandlerStartIsIdempotent(t *testing.T) {
	db, close := testutils.SetupSqliteDB()
	defer close()

	handler := NewEventHandlerService(db).(*EventHandlerService)
	handler.Start()

	handler.mu.Lock()
	first := handler.done
	handler.mu.Unlock()

	handler.Start()

	handler.mu.Lock()
	second := handler.done
	handler.mu.Unlock()

	assert.Equal(t, first, second, "a second Start must not spawn another drain loop")
	handler.Stop()
}

func TestFailedMutationWritesNoEvent(t *testing.T) {
	db, close := testutils.SetupSqliteDB()
	defer close()

	owner := seedUser(t, db, "owner@example.com")
	taskService := &TaskService{}

	_, err := taskService.CreateTask(db, owner.ID, "Buy milk", "2024-01-01", uuid.Nil, models.TaskStyle{})
	assert.NoError(t, err)
	_, err = taskService.CreateTask(db, owner.ID, "Buy milk", "2024-01-01", uuid.Nil, models.TaskStyle{})
	assert.ErrorIs(t, err, ErrDuplicateTask)

	var count int64
	assert.NoError(t, db.DB.Model(&models.Event{}).Where("entity = ?", "task").Count(&count).Error)
	assert.Equal(t, int64(1), count, "the rolled-back duplicate must not leave an event behind")
}
