package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Title             string         `gorm:"type:varchar(100);not null" json:"title"`
	Description       string         `gorm:"type:varchar(500)" json:"description"`
	Status            TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority          TaskPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate           time.Time      `gorm:"not null" json:"due_date"`
	IsCompleted       bool           `gorm:"not null;default:false" json:"is_completed"`
	UserID            uint64         `gorm:"not null;index" json:"user_id"`
	SubtasksTotal     int            `gorm:"not null;default:0" json:"subtasks_total"`
	SubtasksCompleted int            `gorm:"not null;default:0" json:"subtasks_completed"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}
