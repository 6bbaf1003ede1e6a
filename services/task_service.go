package services

import (
	"errors"

	"dueday/dueday/broker"
	"dueday/dueday/database"
	"dueday/dueday/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskServiceInterface is the owner-scoped task store. Every operation takes
// an already-validated owner id and touches only that owner's tasks.
type TaskServiceInterface interface {
	ListTasks(db *database.Database, ownerID uuid.UUID) ([]models.Task, error)
	CreateTask(db *database.Database, ownerID uuid.UUID, title, deadline string, parentID uuid.UUID, style models.TaskStyle) (models.Task, error)
	UpdateTask(db *database.Database, ownerID uuid.UUID, taskID string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(db *database.Database, ownerID uuid.UUID, taskID string) error
}

type TaskService struct{}

// lockForUpdate takes a row lock where the dialect supports it. Without it,
// under READ COMMITTED a create-under-parent and a delete-of-parent could both
// commit, leaving an orphaned child: the delete's child sweep cannot see the
// uncommitted insert. SQLite allows a single writer and has no FOR UPDATE
// syntax, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ListTasks returns all tasks of the owner, parents and children together, in
// insertion order. The ordering is stable across polls unless a mutation
// happens in between, which is what lets clients re-render only when the
// snapshot actually changed.
func (s *TaskService) ListTasks(db *database.Database, ownerID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	result := db.DB.Where("user_id = ?", ownerID).Order("created_at, id").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// CreateTask inserts a new task for the owner. Duplicate detection is not a
// lookup: the insert itself hits the (user_id, title, deadline, parent_id)
// unique index, so two racing identical creates deterministically leave one
// row and one ErrDuplicateTask.
func (s *TaskService) CreateTask(db *database.Database, ownerID uuid.UUID, title, deadline string, parentID uuid.UUID, style models.TaskStyle) (models.Task, error) {
	if title == "" {
		return models.Task{}, ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if parentID != uuid.Nil {
		var parent models.Task
		if err := lockForUpdate(tx).First(&parent, "id = ? AND user_id = ?", parentID, ownerID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Task{}, ErrParentNotFound
			}
			return models.Task{}, err
		}
		// Children cannot have children; the hierarchy stops at two levels.
		if !parent.IsTopLevel() {
			tx.Rollback()
			return models.Task{}, ErrParentNotFound
		}
	}

	task := models.Task{
		ID:       uuid.New(),
		UserID:   ownerID,
		Title:    title,
		Deadline: deadline,
		ParentID: parentID,
		Style:    style,
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Task{}, ErrDuplicateTask
		}
		return models.Task{}, err
	}

	event, err := models.NewEvent(string(broker.TaskCreated), "task", map[string]interface{}{
		"task_id":   task.ID.String(),
		"user_id":   task.UserID.String(),
		"title":     task.Title,
		"deadline":  task.Deadline,
		"parent_id": task.ParentID.String(),
	})
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// UpdateTask applies a patch to a task owned by ownerID. Reparenting is
// rejected so the two-level invariant never needs re-checking on update.
func (s *TaskService) UpdateTask(db *database.Database, ownerID uuid.UUID, taskID string, patch models.TaskPatch) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", taskID, ownerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if patch.ParentID != nil && *patch.ParentID != task.ParentID {
		tx.Rollback()
		return models.Task{}, ErrReparentNotAllowed
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		if *patch.Title == "" {
			tx.Rollback()
			return models.Task{}, ErrInvalidInput
		}
		task.Title = *patch.Title
		updates["title"] = *patch.Title
	}
	if patch.Deadline != nil {
		task.Deadline = *patch.Deadline
		updates["deadline"] = *patch.Deadline
	}
	if patch.IsCompleted != nil {
		task.IsCompleted = *patch.IsCompleted
		updates["is_completed"] = *patch.IsCompleted
	}
	if patch.Style != nil {
		task.Style = *patch.Style
		updates["style"] = *patch.Style
	}

	if len(updates) > 0 {
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			tx.Rollback()
			// Retitling into an existing (owner, title, deadline, parent)
			// tuple is a duplicate, same as on create.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.Task{}, ErrDuplicateTask
			}
			return models.Task{}, err
		}
	}

	event, err := models.NewEvent(string(broker.TaskUpdated), "task", map[string]interface{}{
		"task_id":      task.ID.String(),
		"user_id":      task.UserID.String(),
		"title":        task.Title,
		"is_completed": task.IsCompleted,
	})
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// DeleteTask removes a task owned by ownerID. Deleting a top-level task
// cascade-deletes its children in the same transaction.
func (s *TaskService) DeleteTask(db *database.Database, ownerID uuid.UUID, taskID string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := lockForUpdate(tx).First(&task, "id = ? AND user_id = ?", taskID, ownerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if task.IsTopLevel() {
		if err := tx.Where("parent_id = ? AND user_id = ?", task.ID, ownerID).Delete(&models.Task{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(string(broker.TaskDeleted), "task", map[string]interface{}{
		"task_id": task.ID.String(),
		"user_id": task.UserID.String(),
	})
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
