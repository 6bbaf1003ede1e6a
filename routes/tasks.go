package routes

import (
	"errors"
	"net/http"

	"dueday/dueday/database"
	"dueday/dueday/metrics"
	"dueday/dueday/models"
	"dueday/dueday/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Task error codes on the wire.
const (
	TaskErrInvalidInput   = 0
	TaskErrParentNotFound = 1
	TaskErrDuplicate      = 2
	TaskErrNotFound       = 3
)

type createTaskRequest struct {
	SessionToken string            `json:"sessionToken"`
	Title        string            `json:"title" binding:"required"`
	Deadline     string            `json:"deadline"`
	ParentID     *uuid.UUID        `json:"parentId,omitempty"`
	Style        *models.TaskStyle `json:"style,omitempty"`
}

type updateTaskRequest struct {
	SessionToken string           `json:"sessionToken"`
	Patch        models.TaskPatch `json:"patch"`
}

type deleteTaskRequest struct {
	SessionToken string `json:"sessionToken"`
}

type taskResponse struct {
	Success        bool         `json:"success"`
	Task           *models.Task `json:"task,omitempty"`
	ErrorCode      *int         `json:"errorCode,omitempty"`
	Message        string       `json:"message,omitempty"`
	SessionInvalid bool         `json:"sessionInvalid,omitempty"`
}

type taskListResponse struct {
	Success        bool          `json:"success"`
	Tasks          []models.Task `json:"tasks,omitempty"`
	SessionInvalid bool          `json:"sessionInvalid,omitempty"`
	Message        string        `json:"message,omitempty"`
}

func RegisterTaskRoutes(router *gin.Engine, db *database.Database, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	router.GET("/tasks/:sessionToken", func(c *gin.Context) { ListTasks(c, db, taskService, authService) })
	router.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService, authService) })
	router.PUT("/tasks/:taskId", func(c *gin.Context) { UpdateTask(c, db, taskService, authService) })
	router.DELETE("/tasks/:taskId", func(c *gin.Context) { DeleteTask(c, db, taskService, authService) })
}

// requireSession validates the presented token. On failure it writes the
// tagged session-invalid response itself; that tag, not the status code, is
// the client's only trigger to drop local state and re-authenticate.
func requireSession(c *gin.Context, db *database.Database, authService services.AuthServiceInterface, sessionToken string) (uuid.UUID, bool) {
	userID, err := authService.Validate(db, sessionToken)
	if err != nil {
		metrics.IncrementSessionValidation("invalid")
		c.JSON(http.StatusUnauthorized, taskResponse{
			Success:        false,
			SessionInvalid: true,
			Message:        "Session is invalid, please log in again",
		})
		return uuid.Nil, false
	}
	metrics.IncrementSessionValidation("ok")
	return userID, true
}

// ListTasks returns the owner's full task snapshot in a stable order. Polling
// clients compare it to their last-rendered snapshot by deep equality and
// re-render only on change.
func ListTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	ownerID, ok := requireSession(c, db, authService, c.Param("sessionToken"))
	if !ok {
		return
	}

	tasks, err := taskService.ListTasks(db, ownerID)
	if err != nil {
		metrics.IncrementTaskOperation("list", "error")
		c.JSON(http.StatusInternalServerError, taskListResponse{Success: false, Message: err.Error()})
		return
	}

	metrics.IncrementTaskOperation("list", "ok")
	c.JSON(http.StatusOK, taskListResponse{Success: true, Tasks: tasks})
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	var request createTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, taskResponse{
			Success: false, ErrorCode: intPtr(TaskErrInvalidInput), Message: err.Error(),
		})
		return
	}

	ownerID, ok := requireSession(c, db, authService, request.SessionToken)
	if !ok {
		return
	}

	parentID := uuid.Nil
	if request.ParentID != nil {
		parentID = *request.ParentID
	}
	style := models.TaskStyle{}
	if request.Style != nil {
		style = *request.Style
	}

	task, err := taskService.CreateTask(db, ownerID, request.Title, request.Deadline, parentID, style)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParentNotFound):
			metrics.IncrementTaskOperation("create", "not_found")
			c.JSON(http.StatusNotFound, taskResponse{
				Success: false, ErrorCode: intPtr(TaskErrParentNotFound), Message: "Parent task not found",
			})
		case errors.Is(err, services.ErrDuplicateTask):
			metrics.IncrementTaskOperation("create", "duplicate")
			c.JSON(http.StatusConflict, taskResponse{
				Success: false, ErrorCode: intPtr(TaskErrDuplicate), Message: "Task already exists",
			})
		case errors.Is(err, services.ErrInvalidInput):
			metrics.IncrementTaskOperation("create", "error")
			c.JSON(http.StatusBadRequest, taskResponse{
				Success: false, ErrorCode: intPtr(TaskErrInvalidInput), Message: err.Error(),
			})
		default:
			metrics.IncrementTaskOperation("create", "error")
			c.JSON(http.StatusInternalServerError, taskResponse{Success: false, Message: err.Error()})
		}
		return
	}

	metrics.IncrementTaskOperation("create", "ok")
	c.JSON(http.StatusCreated, taskResponse{Success: true, Task: &task})
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	var request updateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, taskResponse{
			Success: false, ErrorCode: intPtr(TaskErrInvalidInput), Message: err.Error(),
		})
		return
	}

	ownerID, ok := requireSession(c, db, authService, request.SessionToken)
	if !ok {
		return
	}

	task, err := taskService.UpdateTask(db, ownerID, c.Param("taskId"), request.Patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			metrics.IncrementTaskOperation("update", "not_found")
			c.JSON(http.StatusNotFound, taskResponse{
				Success: false, ErrorCode: intPtr(TaskErrNotFound), Message: "Task not found",
			})
		case errors.Is(err, services.ErrDuplicateTask):
			metrics.IncrementTaskOperation("update", "duplicate")
			c.JSON(http.StatusConflict, taskResponse{
				Success: false, ErrorCode: intPtr(TaskErrDuplicate), Message: "Task already exists",
			})
		case errors.Is(err, services.ErrReparentNotAllowed), errors.Is(err, services.ErrInvalidInput):
			metrics.IncrementTaskOperation("update", "error")
			c.JSON(http.StatusBadRequest, taskResponse{
				Success: false, ErrorCode: intPtr(TaskErrInvalidInput), Message: err.Error(),
			})
		default:
			metrics.IncrementTaskOperation("update", "error")
			c.JSON(http.StatusInternalServerError, taskResponse{Success: false, Message: err.Error()})
		}
		return
	}

	metrics.IncrementTaskOperation("update", "ok")
	c.JSON(http.StatusOK, taskResponse{Success: true, Task: &task})
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, authService services.AuthServiceInterface) {
	var request deleteTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, taskResponse{
			Success: false, ErrorCode: intPtr(TaskErrInvalidInput), Message: err.Error(),
		})
		return
	}

	ownerID, ok := requireSession(c, db, authService, request.SessionToken)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, ownerID, c.Param("taskId")); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			metrics.IncrementTaskOperation("delete", "not_found")
			c.JSON(http.StatusNotFound, taskResponse{
				Success: false, ErrorCode: intPtr(TaskErrNotFound), Message: "Task not found",
			})
			return
		}
		metrics.IncrementTaskOperation("delete", "error")
		c.JSON(http.StatusInternalServerError, taskResponse{Success: false, Message: err.Error()})
		return
	}

	metrics.IncrementTaskOperation("delete", "ok")
	c.JSON(http.StatusOK, taskResponse{Success: true})
}
