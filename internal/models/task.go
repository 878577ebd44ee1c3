package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "todo"
	TaskStatusDoing TaskStatus = "doing"
	TaskStatusDone  TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusDoing, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(10);default:'todo'" json:"status"`
	AssigneeID  *uint      `json:"assignee_id"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	CompletedAt *time.Time `json:"completed_at"`

	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
