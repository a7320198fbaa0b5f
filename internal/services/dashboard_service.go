package services

import (
	"fmt"
	"math"
	"time"

	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/repository"
)

// DashboardService computes read-side aggregations over the caller's tasks.
type DashboardService struct {
	taskRepo repository.TaskRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		taskRepo: taskRepo,
	}
}

// Summary holds the dashboard headline numbers.
type Summary struct {
	TotalTasks           int64 `json:"total_tasks"`
	TodoCount            int64 `json:"todo_count"`
	InProgressCount      int64 `json:"in_progress_count"`
	DoneCount            int64 `json:"done_count"`
	OverdueCount         int64 `json:"overdue_count"`
	CompletionPercentage int   `json:"completion_percentage"`
}

// OverdueTask is an overdue task annotated with how many whole days late it is.
type OverdueTask struct {
	Task        models.Task
	DaysOverdue int
}

// PriorityStats holds per-priority task counts.
type PriorityStats struct {
	LowPriority    int64 `json:"low_priority"`
	MediumPriority int64 `json:"medium_priority"`
	HighPriority   int64 `json:"high_priority"`
	Total          int64 `json:"total"`
}

// GetSummary returns totals, per-status counts, the overdue count and the
// completion percentage for a user's tasks.
func (s *DashboardService) GetSummary(userID uint64) (*Summary, error) {
	total, err := s.taskRepo.Count(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	statusCounts, err := s.taskRepo.StatusCounts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}

	overdue, err := s.taskRepo.CountOverdue(userID, startOfToday())
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	done := statusCounts[models.TaskStatusDone]

	return &Summary{
		TotalTasks:           total,
		TodoCount:            statusCounts[models.TaskStatusTodo],
		InProgressCount:      statusCounts[models.TaskStatusInProgress],
		DoneCount:            done,
		OverdueCount:         overdue,
		CompletionPercentage: completionPercentage(done, total),
	}, nil
}

// GetRecentTasks returns the most recently created tasks, newest first.
// The limit is expected to be clamped by the caller.
func (s *DashboardService) GetRecentTasks(userID uint64, limit int) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListRecent(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tasks: %w", err)
	}
	return tasks, nil
}

// GetOverdueTasks returns tasks due strictly before the start of today and
// not done, sorted by due date ascending, each annotated with the number of
// whole days overdue.
func (s *DashboardService) GetOverdueTasks(userID uint64) ([]OverdueTask, error) {
	today := startOfToday()

	tasks, err := s.taskRepo.ListOverdue(userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}

	overdue := make([]OverdueTask, len(tasks))
	for i, task := range tasks {
		overdue[i] = OverdueTask{
			Task:        task,
			DaysOverdue: int(today.Sub(task.DueDate).Hours() / 24),
		}
	}

	return overdue, nil
}

// GetPriorityStats returns per-priority task counts.
func (s *DashboardService) GetPriorityStats(userID uint64) (*PriorityStats, error) {
	counts, err := s.taskRepo.PriorityCounts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by priority: %w", err)
	}

	low := counts[models.TaskPriorityLow]
	medium := counts[models.TaskPriorityMedium]
	high := counts[models.TaskPriorityHigh]

	return &PriorityStats{
		LowPriority:    low,
		MediumPriority: medium,
		HighPriority:   high,
		Total:          low + medium + high,
	}, nil
}

// completionPercentage is round(done/total*100), defined as 0 when there are
// no tasks.
func completionPercentage(done, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// startOfToday is the current day truncated to midnight in local time. The
// overdue boundary: a task due yesterday is overdue, a task due today is not.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
