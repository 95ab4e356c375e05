package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	ProjectID       uint64         `gorm:"not null;index" json:"project_id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Priority        TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Deadline        *time.Time     `json:"deadline"`
	Status          TaskStatus     `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	AssignedUserID  *uint64        `gorm:"index" json:"assigned_user_id"`
	CreatedByUserID uint64         `gorm:"not null" json:"created_by_user_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssignedUserID" json:"assignee,omitempty"`
	Creator  User    `gorm:"foreignKey:CreatedByUserID" json:"creator,omitempty"`
}

// Overdue reports whether the task's deadline has passed. Done tasks are
// never overdue, whatever their deadline.
func (t *Task) Overdue(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) && t.Status != TaskStatusDone
}
