package dto

import (
	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// CreatedAtFormat is the wire format for comment timestamps; the API
// exposes date granularity only
const CreatedAtFormat = "2006-01-02"

// CreateCommentRequest represents the request to comment on a task
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentResponse is the comment representation. The author appears
// as a display string, not a full user object.
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt string    `json:"created_at"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
}

// ToCommentResponse builds the comment representation from a comment
// with its author preloaded
func ToCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt.Format(CreatedAtFormat),
		Author:    comment.Author.FullName,
		Content:   comment.Content,
	}
}

// ToCommentResponses converts a slice of comments
func ToCommentResponses(comments []*domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, ToCommentResponse(comment))
	}
	return responses
}
