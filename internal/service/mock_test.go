package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByIDsFunc     func(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	// Default: every id resolves
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, &domain.User{BaseModel: domain.BaseModel{ID: id}})
	}
	return users, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc             func(ctx context.Context, board *domain.Board) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserIDFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	UpdateFunc             func(ctx context.Context, board *domain.Board) error
	UpdateWithMembersFunc  func(ctx context.Context, board *domain.Board, userIDs []uuid.UUID) error
	ReplaceMembersFunc     func(ctx context.Context, boardID uuid.UUID, userIDs []uuid.UUID) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) UpdateWithMembers(ctx context.Context, board *domain.Board, userIDs []uuid.UUID) error {
	if m.UpdateWithMembersFunc != nil {
		return m.UpdateWithMembersFunc(ctx, board, userIDs)
	}
	return nil
}

func (m *MockBoardRepository) ReplaceMembers(ctx context.Context, boardID uuid.UUID, userIDs []uuid.UUID) error {
	if m.ReplaceMembersFunc != nil {
		return m.ReplaceMembersFunc(ctx, boardID, userIDs)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.PurgeDeletedBeforeFunc != nil {
		return m.PurgeDeletedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc             func(ctx context.Context, task *domain.Task) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByBoardIDFunc      func(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	FindByAssigneeIDFunc   func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	FindByReviewerIDFunc   func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFunc             func(ctx context.Context, task *domain.Task) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByAssigneeID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByAssigneeIDFunc != nil {
		return m.FindByAssigneeIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByReviewerID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByReviewerIDFunc != nil {
		return m.FindByReviewerIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.PurgeDeletedBeforeFunc != nil {
		return m.PurgeDeletedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc             func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByTaskIDFunc       func(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error)
	CountByTaskIDFunc      func(ctx context.Context, taskID uuid.UUID) (int64, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByTaskIDFunc != nil {
		return m.FindByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockCommentRepository) CountByTaskID(ctx context.Context, taskID uuid.UUID) (int64, error) {
	if m.CountByTaskIDFunc != nil {
		return m.CountByTaskIDFunc(ctx, taskID)
	}
	return 0, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCommentRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.PurgeDeletedBeforeFunc != nil {
		return m.PurgeDeletedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockTokenManager is a mock implementation of auth.TokenManager
type MockTokenManager struct {
	GenerateTokenFunc func(userID uuid.UUID) (string, error)
	ValidateTokenFunc func(ctx context.Context, tokenStr string) (uuid.UUID, error)
	RevokeTokenFunc   func(ctx context.Context, tokenStr string) error
}

func (m *MockTokenManager) GenerateToken(userID uuid.UUID) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "test-token", nil
}

func (m *MockTokenManager) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenStr)
	}
	return uuid.Nil, nil
}

func (m *MockTokenManager) RevokeToken(ctx context.Context, tokenStr string) error {
	if m.RevokeTokenFunc != nil {
		return m.RevokeTokenFunc(ctx, tokenStr)
	}
	return nil
}
