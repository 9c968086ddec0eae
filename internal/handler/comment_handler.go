package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// CommentHandler serves the comment endpoints nested under tasks
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment handles POST /tasks/:taskId/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.commentService.CreateComment(c.Request.Context(), principal, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListComments handles GET /tasks/:taskId/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	result, err := h.commentService.ListComments(c.Request.Context(), principal, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetComment handles GET /tasks/:taskId/comments/:commentId
func (h *CommentHandler) GetComment(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	commentID, ok := pathUUID(c, "commentId")
	if !ok {
		return
	}

	result, err := h.commentService.GetComment(c.Request.Context(), principal, taskID, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteComment handles DELETE /tasks/:taskId/comments/:commentId
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	commentID, ok := pathUUID(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), principal, taskID, commentID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusNoContent, nil)
}
