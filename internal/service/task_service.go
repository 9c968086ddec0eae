package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kanban-board-api/internal/authz"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, principal uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, principal uuid.UUID, taskID uuid.UUID) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, principal uuid.UUID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, principal uuid.UUID, taskID uuid.UUID) error
	ListAssignedToMe(ctx context.Context, principal uuid.UUID) ([]dto.TaskResponse, error)
	ListReviewing(ctx context.Context, principal uuid.UUID) ([]dto.TaskResponse, error)
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		userRepo:  userRepo,
		metrics:   m,
		logger:    logger,
	}
}

// taskSnapshot builds the authorization snapshot from a task and its board
func taskSnapshot(board *domain.Board, task *domain.Task) authz.Snapshot {
	s := boardSnapshot(board)
	s.TaskAssigneeID = task.AssigneeID
	s.TaskReviewerID = task.ReviewerID
	s.TaskAuthorID = task.AuthorID
	return s
}

// CreateTask creates a task on a board the principal owns or belongs to.
// The author is always the principal; status and priority fall back to
// their defaults when omitted.
func (s *taskServiceImpl) CreateTask(ctx context.Context, principal uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	board, err := s.boardRepo.FindByID(ctx, req.Board)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	if !authz.Decide(principal, authz.ActionTaskCreate, boardSnapshot(board)).Allowed() {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}

	if err := s.validateUserRefs(ctx, req.AssigneeID, req.ReviewerID); err != nil {
		return nil, err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	status := domain.TaskStatusToDo
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
	}
	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
	}

	task := &domain.Task{
		BoardID:     board.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
		DueDate:     dueDate,
		AuthorID:    principal,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}
	s.logger.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("board_id", board.ID.String()),
		zap.String("author_id", principal.String()))

	created, err := s.taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load created task", err.Error())
	}

	resp := dto.ToTaskResponse(created)
	return &resp, nil
}

// GetTask returns a single task. Board-level read access applies.
func (s *taskServiceImpl) GetTask(ctx context.Context, principal uuid.UUID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, board, err := s.findTaskWithBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(principal, authz.ActionTaskRead, taskSnapshot(board, task)).Allowed() {
		return nil, response.NewForbiddenError("You do not have access to this task", "")
	}

	resp := dto.ToTaskResponse(task)
	return &resp, nil
}

// UpdateTask updates task fields. Only the assignee or reviewer may
// update; the board reference and author never change.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, principal uuid.UUID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, board, err := s.findTaskWithBoard(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(principal, authz.ActionTaskUpdate, taskSnapshot(board, task)).Allowed() {
		return nil, response.NewForbiddenError("Only the assignee or reviewer can update this task", "")
	}

	if err := s.validateUserRefs(ctx, req.AssigneeID, req.ReviewerID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == uuid.Nil {
			task.AssigneeID = nil
		} else {
			task.AssigneeID = req.AssigneeID
		}
	}
	if req.ReviewerID != nil {
		if *req.ReviewerID == uuid.Nil {
			task.ReviewerID = nil
		} else {
			task.ReviewerID = req.ReviewerID
		}
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	updated, err := s.taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load updated task", err.Error())
	}

	resp := dto.ToTaskResponse(updated)
	return &resp, nil
}

// DeleteTask deletes a task and its comments. Author or board owner only.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, principal uuid.UUID, taskID uuid.UUID) error {
	task, board, err := s.findTaskWithBoard(ctx, taskID)
	if err != nil {
		return err
	}

	if !authz.Decide(principal, authz.ActionTaskDelete, taskSnapshot(board, task)).Allowed() {
		return response.NewForbiddenError("Only the task author or board owner can delete this task", "")
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}

	s.logger.Info("Task deleted",
		zap.String("task_id", task.ID.String()),
		zap.String("board_id", task.BoardID.String()))
	return nil
}

// ListAssignedToMe returns every task assigned to the principal across
// boards. Membership is not re-checked: assignment implied membership
// at creation time and the view survives leaving the board.
func (s *taskServiceImpl) ListAssignedToMe(ctx context.Context, principal uuid.UUID) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindByAssigneeID(ctx, principal)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch assigned tasks", err.Error())
	}
	return dto.ToTaskResponses(tasks), nil
}

// ListReviewing returns every task the principal reviews, symmetric to
// ListAssignedToMe
func (s *taskServiceImpl) ListReviewing(ctx context.Context, principal uuid.UUID) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.FindByReviewerID(ctx, principal)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch reviewing tasks", err.Error())
	}
	return dto.ToTaskResponses(tasks), nil
}

// findTaskWithBoard loads the task and its board, mapping misses to
// NotFound before any authorization is attempted
func (s *taskServiceImpl) findTaskWithBoard(ctx context.Context, taskID uuid.UUID) (*domain.Task, *domain.Board, error) {
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

// validateUserRefs checks that submitted assignee/reviewer ids resolve
// to existing users
func (s *taskServiceImpl) validateUserRefs(ctx context.Context, ids ...*uuid.UUID) error {
	lookup := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != nil && *id != uuid.Nil {
			lookup = append(lookup, *id)
		}
	}
	if len(lookup) == 0 {
		return nil
	}

	users, err := s.userRepo.FindByIDs(ctx, lookup)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to resolve users", err.Error())
	}

	found := make(map[uuid.UUID]struct{}, len(users))
	for _, u := range users {
		found[u.ID] = struct{}{}
	}
	for _, id := range lookup {
		if _, ok := found[id]; !ok {
			return response.NewValidationError("Assignee or reviewer id does not resolve to an existing user", "")
		}
	}
	return nil
}

// parseDueDate parses the wire format into the stored date type
func parseDueDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(dto.DueDateFormat, value)
	if err != nil {
		return datatypes.Date{}, response.NewValidationError("Invalid due date format, expected YYYY-MM-DD", "")
	}
	return datatypes.Date(t), nil
}
