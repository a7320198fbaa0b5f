package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/logging"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/services"
	"github.com/tasktrack/tasktrack-api/internal/utils"
	"github.com/tasktrack/tasktrack-api/internal/validation"
)

// TaskHandler coordinates task CRUD HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		Priority    string `json:"priority"`
		DueDate     string `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if result := validation.TaskTitle(req.Title); !result.OK {
		apierrors.BadRequest(c, result.Message)
		return
	}
	if result := validation.Description(req.Description); !result.OK {
		apierrors.BadRequest(c, result.Message)
		return
	}
	if req.Status != "" {
		if result := validation.Status(req.Status); !result.OK {
			apierrors.BadRequest(c, result.Message)
			return
		}
	}
	if req.Priority != "" {
		if result := validation.Priority(req.Priority); !result.OK {
			apierrors.BadRequest(c, result.Message)
			return
		}
	}

	dueDate, result := validation.DueDate(req.DueDate)
	if !result.OK {
		apierrors.BadRequest(c, result.Message)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     dueDate,
		UserID:      userID,
	})
	if err != nil {
		logging.L().Error().Err(err).Msg("failed to create task")
		apierrors.InternalError(c, "Error creating task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// ListTasks returns the caller's tasks with optional status, priority and
// free-text filters plus pagination.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		UserID:   userID,
		Search:   c.Query("q"),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		s := models.TaskStatus(status)
		input.Status = &s
	}
	if priority := strings.TrimSpace(c.Query("priority")); priority != "" {
		p := models.TaskPriority(priority)
		input.Priority = &p
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		logging.L().Error().Err(err).Msg("failed to list tasks")
		apierrors.InternalError(c, "Error fetching tasks")
		return
	}

	message := fmt.Sprintf("Found %d tasks", len(tasks))
	c.JSON(http.StatusOK, dto.ToTaskListResponse(message, tasks, utils.NewPaginationResponse(params, total)))
}

// GetTask returns one task. Ownership was already enforced by
// RequireTaskOwnership, which loaded the task into the context.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task": dto.ToTaskDTO(task),
	})
}

// UpdateTask applies a partial update: only fields present in the body are
// touched, so an update omitting a field leaves the stored value unchanged.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// The owner reference is immutable
	if _, ok := rawReq["user_id"]; ok {
		apierrors.BadRequest(c, "Cannot change task owner")
		return
	}

	var input services.UpdateTaskInput

	if raw, ok := rawReq["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "Title must be a string")
			return
		}
		if result := validation.TaskTitle(title); !result.OK {
			apierrors.BadRequest(c, result.Message)
			return
		}
		input.Title = &title
	}

	if raw, ok := rawReq["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "Description must be a string")
			return
		}
		if result := validation.Description(description); !result.OK {
			apierrors.BadRequest(c, result.Message)
			return
		}
		input.Description = &description
	}

	if raw, ok := rawReq["status"]; ok {
		status, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "Status must be a string")
			return
		}
		if result := validation.Status(status); !result.OK {
			apierrors.BadRequest(c, result.Message)
			return
		}
		s := models.TaskStatus(status)
		input.Status = &s
	}

	if raw, ok := rawReq["priority"]; ok {
		priority, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "Priority must be a string")
			return
		}
		if result := validation.Priority(priority); !result.OK {
			apierrors.BadRequest(c, result.Message)
			return
		}
		p := models.TaskPriority(priority)
		input.Priority = &p
	}

	if raw, ok := rawReq["due_date"]; ok {
		dueDateStr, ok := raw.(string)
		if !ok {
			apierrors.BadRequest(c, "Due date must be a valid date")
			return
		}
		dueDate, result := validation.DueDate(dueDateStr)
		if !result.OK {
			apierrors.BadRequest(c, result.Message)
			return
		}
		input.DueDate = &dueDate
	}

	if raw, ok := rawReq["is_completed"]; ok {
		isCompleted, ok := raw.(bool)
		if !ok {
			apierrors.BadRequest(c, "Completed flag must be a boolean")
			return
		}
		input.IsCompleted = &isCompleted
	}

	updated, err := h.taskService.UpdateTask(&task, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    dto.ToTaskDTO(*updated),
	})
}

// DeleteTask removes a task and its subtasks.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task successfully deleted",
		"task_id": task.ID,
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		logging.L().Error().Err(err).Msg("task operation failed")
		apierrors.InternalError(c, "")
	}
}
