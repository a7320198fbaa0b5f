package handlers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/logging"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// SubtaskHandler coordinates subtask HTTP handlers. All routes run behind
// RequireTaskOwnership, so the parent task is loaded and owned by the caller.
type SubtaskHandler struct {
	subtaskService *services.SubtaskService
}

// NewSubtaskHandler creates a new SubtaskHandler.
func NewSubtaskHandler(subtaskService *services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskService: subtaskService,
	}
}

// AddSubtask appends a new subtask to the parent task.
func (h *SubtaskHandler) AddSubtask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type AddSubtaskRequest struct {
		Title string `json:"title"`
	}

	var req AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		apierrors.BadRequest(c, "Subtask title is required")
		return
	}

	subtask, counts, err := h.subtaskService.AddSubtask(task.ID, req.Title)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subtask added successfully",
		"subtask": dto.ToSubtaskDTO(*subtask),
		"counts":  counts,
	})
}

// ListSubtasks returns the parent task's subtasks with counts and the
// completion percentage.
func (h *SubtaskHandler) ListSubtasks(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	subtasks, counts, err := h.subtaskService.ListSubtasks(task.ID)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	percentage := 0
	if counts.Total > 0 {
		percentage = int(math.Round(float64(counts.Completed) / float64(counts.Total) * 100))
	}

	c.JSON(http.StatusOK, gin.H{
		"subtasks": dto.ToSubtaskDTOs(subtasks),
		"counts": gin.H{
			"total":      counts.Total,
			"completed":  counts.Completed,
			"percentage": percentage,
		},
	})
}

// ToggleSubtask sets a subtask's completed flag.
func (h *SubtaskHandler) ToggleSubtask(c *gin.Context) {
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

	raw, present := rawReq["completed"]
	if !present {
		apierrors.BadRequest(c, "Completed status is required")
		return
	}
	completed, ok := raw.(bool)
	if !ok {
		apierrors.BadRequest(c, "Completed status must be a boolean")
		return
	}

	subtask, counts, err := h.subtaskService.ToggleSubtask(task.ID, c.Param("subtaskId"), completed)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subtask updated",
		"subtask": dto.ToSubtaskDTO(*subtask),
		"counts":  counts,
	})
}

// UpdateSubtask replaces a subtask's title.
func (h *SubtaskHandler) UpdateSubtask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateSubtaskRequest struct {
		Title string `json:"title"`
	}

	var req UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		apierrors.BadRequest(c, "Subtask title is required")
		return
	}

	subtask, err := h.subtaskService.UpdateSubtaskTitle(task.ID, c.Param("subtaskId"), req.Title)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subtask updated",
		"subtask": dto.ToSubtaskDTO(*subtask),
	})
}

// DeleteSubtask removes a subtask from the parent task.
func (h *SubtaskHandler) DeleteSubtask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	counts, err := h.subtaskService.DeleteSubtask(task.ID, c.Param("subtaskId"))
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subtask deleted",
		"counts":  counts,
	})
}

func respondSubtaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSubtaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		logging.L().Error().Err(err).Msg("subtask operation failed")
		apierrors.InternalError(c, "")
	}
}
