package repository

import (
	"strings"
	"time"

	"github.com/tasktrack/tasktrack-api/internal/database"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.user_id = ?", filter.UserID)

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		// Case-insensitive substring match over title and description
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update saves a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task together with its subtasks
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddSubtask inserts a subtask and resyncs the parent's cached counts
func (r *GormTaskRepository) AddSubtask(subtask *models.Subtask) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subtask).Error; err != nil {
			return err
		}
		return syncSubtaskCounts(tx, subtask.TaskID)
	})
}

// UpdateSubtask saves a subtask and resyncs the parent's cached counts
func (r *GormTaskRepository) UpdateSubtask(subtask *models.Subtask) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(subtask).Error; err != nil {
			return err
		}
		return syncSubtaskCounts(tx, subtask.TaskID)
	})
}

// DeleteSubtask removes a subtask and resyncs the parent's cached counts
func (r *GormTaskRepository) DeleteSubtask(taskID uint64, subtaskID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? AND id = ?", taskID, subtaskID).
			Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		return syncSubtaskCounts(tx, taskID)
	})
}

// FindSubtask finds a subtask within a task
func (r *GormTaskRepository) FindSubtask(taskID uint64, subtaskID string) (*models.Subtask, error) {
	var subtask models.Subtask
	if err := r.db.Where("task_id = ? AND id = ?", taskID, subtaskID).
		First(&subtask).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

// ListSubtasks lists a task's subtasks in creation order
func (r *GormTaskRepository) ListSubtasks(taskID uint64) ([]models.Subtask, error) {
	var subtasks []models.Subtask
	if err := r.db.Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&subtasks).Error; err != nil {
		return nil, err
	}
	return subtasks, nil
}

// syncSubtaskCounts recomputes the cached counters from the live subtask rows
// inside the same transaction that mutated them. The counters are never
// trusted across mutations.
func syncSubtaskCounts(tx *gorm.DB, taskID uint64) error {
	var total, completed int64
	if err := tx.Model(&models.Subtask{}).
		Where("task_id = ?", taskID).
		Count(&total).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Subtask{}).
		Where("task_id = ? AND completed = ?", taskID, true).
		Count(&completed).Error; err != nil {
		return err
	}

	return tx.Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"subtasks_total":     total,
			"subtasks_completed": completed,
		}).Error
}

// Count counts all tasks owned by a user
func (r *GormTaskRepository) Count(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// StatusCounts counts a user's tasks partitioned by status
func (r *GormTaskRepository) StatusCounts(userID uint64) (map[models.TaskStatus]int64, error) {
	var rows []struct {
		Status models.TaskStatus
		Count  int64
	}

	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// PriorityCounts counts a user's tasks partitioned by priority
func (r *GormTaskRepository) PriorityCounts(userID uint64) (map[models.TaskPriority]int64, error) {
	var rows []struct {
		Priority models.TaskPriority
		Count    int64
	}

	err := r.db.Model(&models.Task{}).
		Select("priority, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskPriority]int64, len(rows))
	for _, row := range rows {
		counts[row.Priority] = row.Count
	}
	return counts, nil
}

// CountOverdue counts tasks due strictly before the cutoff and not done
func (r *GormTaskRepository) CountOverdue(userID uint64, before time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND due_date < ? AND status <> ?", userID, before, models.TaskStatusDone).
		Count(&count).Error
	return count, err
}

// ListOverdue lists overdue tasks sorted by due date ascending
func (r *GormTaskRepository) ListOverdue(userID uint64, before time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ? AND due_date < ? AND status <> ?", userID, before, models.TaskStatusDone).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListRecent lists the most recently created tasks, newest first
func (r *GormTaskRepository) ListRecent(userID uint64, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
