package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/authz"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, principal uuid.UUID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, principal uuid.UUID, taskID uuid.UUID) ([]dto.CommentResponse, error)
	GetComment(ctx context.Context, principal uuid.UUID, taskID, commentID uuid.UUID) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, principal uuid.UUID, taskID, commentID uuid.UUID) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	boardRepo   repository.BoardRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	boardRepo repository.BoardRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		boardRepo:   boardRepo,
		metrics:     m,
		logger:      logger,
	}
}

// CreateComment creates a comment on a task. Board-level membership is
// required; the author is always the principal.
func (s *commentServiceImpl) CreateComment(ctx context.Context, principal uuid.UUID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	_, board, err := s.findTaskBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(principal, authz.ActionCommentCreate, boardSnapshot(board)).Allowed() {
		return nil, response.NewForbiddenError("You do not have access to this task", "")
	}

	comment := &domain.Comment{
		TaskID:   taskID,
		AuthorID: principal,
		Content:  req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load created comment", err.Error())
	}

	resp := dto.ToCommentResponse(created)
	return &resp, nil
}

// ListComments returns the comments on a task, most recent day first
func (s *commentServiceImpl) ListComments(ctx context.Context, principal uuid.UUID, taskID uuid.UUID) ([]dto.CommentResponse, error) {
	_, board, err := s.findTaskBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(principal, authz.ActionCommentRead, boardSnapshot(board)).Allowed() {
		return nil, response.NewForbiddenError("You do not have access to this task", "")
	}

	comments, err := s.commentRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", err.Error())
	}
	return dto.ToCommentResponses(comments), nil
}

// GetComment returns a single comment. Board-level read access applies
// regardless of authorship.
func (s *commentServiceImpl) GetComment(ctx context.Context, principal uuid.UUID, taskID, commentID uuid.UUID) (*dto.CommentResponse, error) {
	comment, board, err := s.findComment(ctx, taskID, commentID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(principal, authz.ActionCommentRead, boardSnapshot(board)).Allowed() {
		return nil, response.NewForbiddenError("You do not have access to this comment", "")
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

// DeleteComment deletes a comment. Author only; even the board owner
// is refused.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, principal uuid.UUID, taskID, commentID uuid.UUID) error {
	comment, board, err := s.findComment(ctx, taskID, commentID)
	if err != nil {
		return err
	}

	snapshot := boardSnapshot(board)
	snapshot.CommentAuthorID = comment.AuthorID
	if !authz.Decide(principal, authz.ActionCommentDelete, snapshot).Allowed() {
		return response.NewForbiddenError("Only the comment author can delete this comment", "")
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}

	s.logger.Info("Comment deleted",
		zap.String("comment_id", comment.ID.String()),
		zap.String("task_id", taskID.String()))
	return nil
}

// findTaskBoard resolves the task and its board, NotFound before authz
func (s *commentServiceImpl) findTaskBoard(ctx context.Context, taskID uuid.UUID) (*domain.Task, *domain.Board, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch task", err.Error())
	}

	board, err := s.boardRepo.FindByID(ctx, task.BoardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	return task, board, nil
}

// findComment resolves the comment under its task and the task's board.
// A comment id that exists under a different task is NotFound.
func (s *commentServiceImpl) findComment(ctx context.Context, taskID, commentID uuid.UUID) (*domain.Comment, *domain.Board, error) {
	_, board, err := s.findTaskBoard(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFoundError("Comment not found", "")
		}
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}
	if comment.TaskID != taskID {
		return nil, nil, response.NewNotFoundError("Comment not found", "")
	}

	return comment, board, nil
}
