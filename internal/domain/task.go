package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskStatus represents the workflow state of a task
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// ValidTaskStatus reports whether s is one of the known workflow states
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents the priority level of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ValidTaskPriority reports whether p is one of the known priority levels
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task represents a work item on a board.
// BoardID and AuthorID never change after creation.
type Task struct {
	BaseModel
	BoardID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_board_id" json:"board_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:varchar(255)" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'todo';index:idx_tasks_status" json:"status"`
	Priority    TaskPriority   `gorm:"type:varchar(20);not null;default:'medium';index:idx_tasks_priority" json:"priority"`
	AssigneeID  *uuid.UUID     `gorm:"type:uuid;index:idx_tasks_assignee_id" json:"assignee_id"`
	ReviewerID  *uuid.UUID     `gorm:"type:uuid;index:idx_tasks_reviewer_id" json:"reviewer_id"`
	DueDate     datatypes.Date `gorm:"type:date;not null" json:"due_date"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_author_id" json:"author_id"`
	Board       Board          `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
	Assignee    *User          `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
	Reviewer    *User          `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL" json:"reviewer,omitempty"`
	Comments    []Comment      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
