package dto

import (
	"time"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// DueDateFormat is the wire format for task due dates
const DueDateFormat = "2006-01-02"

// CreateTaskRequest represents the request to create a task.
// The author is always the authenticated principal, never taken
// from the body.
type CreateTaskRequest struct {
	Board       uuid.UUID  `json:"board" binding:"required"`
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description string     `json:"description" binding:"max=255"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID  *uuid.UUID `json:"assignee_id" binding:"omitempty"`
	ReviewerID  *uuid.UUID `json:"reviewer_id" binding:"omitempty"`
	DueDate     string     `json:"due_date" binding:"required,datetime=2006-01-02"`
}

// UpdateTaskRequest represents the request to update a task.
// All fields are optional; board and author are immutable and have
// no counterpart here.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=255"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID  *uuid.UUID `json:"assignee_id" binding:"omitempty"`
	ReviewerID  *uuid.UUID `json:"reviewer_id" binding:"omitempty"`
	DueDate     *string    `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// TaskResponse is the canonical task representation, used for board
// details, task reads and the assigned/reviewing views alike
type TaskResponse struct {
	ID            uuid.UUID `json:"id"`
	Board         uuid.UUID `json:"board"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Assignee      *MiniUser `json:"assignee"`
	Reviewer      *MiniUser `json:"reviewer"`
	DueDate       string    `json:"due_date"`
	CommentsCount int       `json:"comments_count"`
}

// ToTaskResponse builds the task representation from a task with
// assignee, reviewer and comments preloaded
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Board:         task.BoardID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        string(task.Status),
		Priority:      string(task.Priority),
		Assignee:      ToMiniUserPtr(task.Assignee),
		Reviewer:      ToMiniUserPtr(task.Reviewer),
		DueDate:       time.Time(task.DueDate).Format(DueDateFormat),
		CommentsCount: len(task.Comments),
	}
}

// ToTaskResponses converts a slice of tasks
func ToTaskResponses(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, ToTaskResponse(task))
	}
	return responses
}
