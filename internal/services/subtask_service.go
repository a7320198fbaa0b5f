package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/repository"
	"gorm.io/gorm"
)

var ErrSubtaskNotFound = errors.New("Subtask not found")

// SubtaskCounts carries a task's cached subtask counters.
type SubtaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// SubtaskService handles subtask mutations. Ownership of the parent task has
// already been established by the caller; subtasks are only ever addressed
// through their task.
type SubtaskService struct {
	taskRepo repository.TaskRepository
}

// NewSubtaskService creates a new SubtaskService
func NewSubtaskService(taskRepo repository.TaskRepository) *SubtaskService {
	return &SubtaskService{
		taskRepo: taskRepo,
	}
}

// AddSubtask appends a new subtask to a task and returns it with the
// refreshed counts.
func (s *SubtaskService) AddSubtask(taskID uint64, title string) (*models.Subtask, SubtaskCounts, error) {
	subtask := &models.Subtask{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Title:     strings.TrimSpace(title),
		Completed: false,
	}

	if err := s.taskRepo.AddSubtask(subtask); err != nil {
		return nil, SubtaskCounts{}, fmt.Errorf("failed to add subtask: %w", err)
	}

	counts, err := s.counts(taskID)
	if err != nil {
		return nil, SubtaskCounts{}, err
	}

	return subtask, counts, nil
}

// ListSubtasks returns a task's subtasks with the cached counts.
func (s *SubtaskService) ListSubtasks(taskID uint64) ([]models.Subtask, SubtaskCounts, error) {
	subtasks, err := s.taskRepo.ListSubtasks(taskID)
	if err != nil {
		return nil, SubtaskCounts{}, fmt.Errorf("failed to list subtasks: %w", err)
	}

	counts, err := s.counts(taskID)
	if err != nil {
		return nil, SubtaskCounts{}, err
	}

	return subtasks, counts, nil
}

// ToggleSubtask sets a subtask's completed flag. The completion timestamp is
// set when completing and cleared when un-completing.
func (s *SubtaskService) ToggleSubtask(taskID uint64, subtaskID string, completed bool) (*models.Subtask, SubtaskCounts, error) {
	subtask, err := s.findSubtask(taskID, subtaskID)
	if err != nil {
		return nil, SubtaskCounts{}, err
	}

	subtask.Completed = completed
	if completed {
		now := time.Now()
		subtask.CompletedAt = &now
	} else {
		subtask.CompletedAt = nil
	}

	if err := s.taskRepo.UpdateSubtask(subtask); err != nil {
		return nil, SubtaskCounts{}, fmt.Errorf("failed to update subtask: %w", err)
	}

	counts, err := s.counts(taskID)
	if err != nil {
		return nil, SubtaskCounts{}, err
	}

	return subtask, counts, nil
}

// UpdateSubtaskTitle replaces a subtask's title. Counts are unaffected.
func (s *SubtaskService) UpdateSubtaskTitle(taskID uint64, subtaskID, title string) (*models.Subtask, error) {
	subtask, err := s.findSubtask(taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	subtask.Title = strings.TrimSpace(title)

	if err := s.taskRepo.UpdateSubtask(subtask); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}

	return subtask, nil
}

// DeleteSubtask removes a subtask and returns the refreshed counts.
func (s *SubtaskService) DeleteSubtask(taskID uint64, subtaskID string) (SubtaskCounts, error) {
	if _, err := s.findSubtask(taskID, subtaskID); err != nil {
		return SubtaskCounts{}, err
	}

	if err := s.taskRepo.DeleteSubtask(taskID, subtaskID); err != nil {
		return SubtaskCounts{}, fmt.Errorf("failed to delete subtask: %w", err)
	}

	return s.counts(taskID)
}

func (s *SubtaskService) findSubtask(taskID uint64, subtaskID string) (*models.Subtask, error) {
	subtask, err := s.taskRepo.FindSubtask(taskID, subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("failed to find subtask: %w", err)
	}
	return subtask, nil
}

// counts reads the cached counters back from the task row. The repository
// resyncs them inside every subtask mutation, so the row is authoritative.
func (s *SubtaskService) counts(taskID uint64) (SubtaskCounts, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return SubtaskCounts{}, fmt.Errorf("failed to reload task counts: %w", err)
	}
	return SubtaskCounts{
		Total:     task.SubtasksTotal,
		Completed: task.SubtasksCompleted,
	}, nil
}
