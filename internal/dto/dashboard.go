package dto

import (
	"time"

	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// DashboardResponse is the envelope for all dashboard reads
type DashboardResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// NewDashboardResponse wraps a payload in the dashboard envelope
func NewDashboardResponse(data any) DashboardResponse {
	return DashboardResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// RecentTaskDTO represents a task in the recent-tasks widget
type RecentTaskDTO struct {
	ID        uint64              `json:"id"`
	Title     string              `json:"title"`
	Status    models.TaskStatus   `json:"status"`
	Priority  models.TaskPriority `json:"priority"`
	DueDate   time.Time           `json:"due_date"`
	CreatedAt time.Time           `json:"created_at"`
}

// OverdueTaskDTO represents a task in the overdue-tasks widget
type OverdueTaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     time.Time           `json:"due_date"`
	DaysOverdue int                 `json:"days_overdue"`
}

// RecentTasksData is the recent-tasks payload
type RecentTasksData struct {
	RecentTasks []RecentTaskDTO `json:"recent_tasks"`
	Count       int             `json:"count"`
	Limit       int             `json:"limit"`
}

// OverdueTasksData is the overdue-tasks payload
type OverdueTasksData struct {
	OverdueTasks []OverdueTaskDTO `json:"overdue_tasks"`
	Count        int              `json:"count"`
}

// ToRecentTasksData converts recent tasks to the widget payload
func ToRecentTasksData(tasks []models.Task, limit int) RecentTasksData {
	items := make([]RecentTaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = RecentTaskDTO{
			ID:        task.ID,
			Title:     task.Title,
			Status:    task.Status,
			Priority:  task.Priority,
			DueDate:   task.DueDate,
			CreatedAt: task.CreatedAt,
		}
	}

	return RecentTasksData{
		RecentTasks: items,
		Count:       len(items),
		Limit:       limit,
	}
}

// ToOverdueTasksData converts annotated overdue tasks to the widget payload
func ToOverdueTasksData(tasks []services.OverdueTask) OverdueTasksData {
	items := make([]OverdueTaskDTO, len(tasks))
	for i, entry := range tasks {
		items[i] = OverdueTaskDTO{
			ID:          entry.Task.ID,
			Title:       entry.Task.Title,
			Status:      entry.Task.Status,
			Priority:    entry.Task.Priority,
			DueDate:     entry.Task.DueDate,
			DaysOverdue: entry.DaysOverdue,
		}
	}

	return OverdueTasksData{
		OverdueTasks: items,
		Count:        len(items),
	}
}
