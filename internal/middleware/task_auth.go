package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tasktrack/tasktrack-api/internal/constants"
	"github.com/tasktrack/tasktrack-api/internal/database"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/models"
)

// RequireTaskOwnership loads the task addressed by the :id parameter and
// verifies the caller owns it. Existence is checked before ownership: a
// missing task is 404, an existing task with a different owner is 403.
// The check runs on every request and is never cached.
func RequireTaskOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Subtasks").
			First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if task.UserID != userID {
			apierrors.Forbidden(c, "Not authorized to access this task")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskOwnership from context
func GetTask(c *gin.Context) (models.Task, bool) {
	taskValue, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := taskValue.(models.Task)
	return task, ok
}
