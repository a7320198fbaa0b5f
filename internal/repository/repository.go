package repository

import (
	"time"

	"github.com/tasktrack/tasktrack-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Search   string
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task and subtask data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, newest first
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update saves a task
	Update(task *models.Task) error

	// Delete deletes a task and its subtasks
	Delete(id uint64) error

	// AddSubtask inserts a subtask and resyncs the parent's cached counts
	AddSubtask(subtask *models.Subtask) error

	// UpdateSubtask saves a subtask and resyncs the parent's cached counts
	UpdateSubtask(subtask *models.Subtask) error

	// DeleteSubtask removes a subtask and resyncs the parent's cached counts
	DeleteSubtask(taskID uint64, subtaskID string) error

	// FindSubtask finds a subtask within a task
	FindSubtask(taskID uint64, subtaskID string) (*models.Subtask, error)

	// ListSubtasks lists a task's subtasks in creation order
	ListSubtasks(taskID uint64) ([]models.Subtask, error)

	// Count counts all tasks owned by a user
	Count(userID uint64) (int64, error)

	// StatusCounts counts a user's tasks partitioned by status
	StatusCounts(userID uint64) (map[models.TaskStatus]int64, error)

	// PriorityCounts counts a user's tasks partitioned by priority
	PriorityCounts(userID uint64) (map[models.TaskPriority]int64, error)

	// CountOverdue counts tasks due strictly before the cutoff and not done
	CountOverdue(userID uint64, before time.Time) (int64, error)

	// ListOverdue lists overdue tasks sorted by due date ascending
	ListOverdue(userID uint64, before time.Time) ([]models.Task, error)

	// ListRecent lists the most recently created tasks, newest first
	ListRecent(userID uint64, limit int) ([]models.Task, error)
}
