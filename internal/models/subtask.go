package models

import "time"

// Subtask is a child record of a Task. It cannot outlive its parent: task
// deletion removes its subtasks in the same transaction, so there is no
// soft delete here.
type Subtask struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	TaskID      uint64     `gorm:"not null;index" json:"task_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
