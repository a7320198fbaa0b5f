package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/logging"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/services"
	"github.com/tasktrack/tasktrack-api/internal/utils"
)

// DashboardHandler serves aggregation reads scoped to the caller.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetSummary returns totals, per-status counts, the overdue count and the
// completion percentage.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summary, err := h.dashboardService.GetSummary(userID)
	if err != nil {
		logging.L().Error().Err(err).Msg("failed to compute dashboard summary")
		apierrors.InternalError(c, "Error computing dashboard summary")
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(summary))
}

// GetRecentTasks returns the most recently created tasks, newest first.
func (h *DashboardHandler) GetRecentTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	limit := utils.GetRecentLimit(c)

	tasks, err := h.dashboardService.GetRecentTasks(userID, limit)
	if err != nil {
		logging.L().Error().Err(err).Msg("failed to fetch recent tasks")
		apierrors.InternalError(c, "Error fetching recent tasks")
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(dto.ToRecentTasksData(tasks, limit)))
}

// GetOverdueTasks returns overdue tasks sorted by due date ascending.
func (h *DashboardHandler) GetOverdueTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	overdue, err := h.dashboardService.GetOverdueTasks(userID)
	if err != nil {
		logging.L().Error().Err(err).Msg("failed to fetch overdue tasks")
		apierrors.InternalError(c, "Error fetching overdue tasks")
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(dto.ToOverdueTasksData(overdue)))
}

// GetPriorityStats returns per-priority task counts.
func (h *DashboardHandler) GetPriorityStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.dashboardService.GetPriorityStats(userID)
	if err != nil {
		logging.L().Error().Err(err).Msg("failed to compute priority stats")
		apierrors.InternalError(c, "Error computing priority statistics")
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(stats))
}
