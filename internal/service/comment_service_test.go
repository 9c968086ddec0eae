package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
)

func testComment(commentID, taskID, authorID uuid.UUID) *domain.Comment {
	return &domain.Comment{
		BaseModel: domain.BaseModel{ID: commentID},
		TaskID:    taskID,
		AuthorID:  authorID,
		Author:    domain.User{BaseModel: domain.BaseModel{ID: authorID}, FullName: "Jamie Doe"},
		Content:   "Looks good to me",
	}
}

func TestCreateComment_AuthorIsPrincipal(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()
	commentID := uuid.New()

	var created *domain.Comment
	mockCommentRepo := &MockCommentRepository{
		CreateFunc: func(ctx context.Context, comment *domain.Comment) error {
			comment.ID = commentID
			created = comment
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return created, nil
		},
	}
	mockTaskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return testTask(taskID, boardID, owner), nil
		},
	}
	mockBoardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return testBoard(boardID, owner, member), nil
		},
	}

	svc := NewCommentService(mockCommentRepo, mockTaskRepo, mockBoardRepo, nil, zap.NewNop())

	resp, err := svc.CreateComment(context.Background(), member, taskID, &dto.CreateCommentRequest{
		Content: "Looks good to me",
	})

	require.NoError(t, err)
	assert.Equal(t, member, created.AuthorID)
	assert.Equal(t, taskID, created.TaskID)
	assert.Equal(t, commentID, resp.ID)
}

func TestCreateComment_OutsiderForbidden(t *testing.T) {
	owner := uuid.New()
	outsider := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()

	mockTaskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return testTask(taskID, boardID, owner), nil
		},
	}
	mockBoardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return testBoard(boardID, owner), nil
		},
	}

	svc := NewCommentService(&MockCommentRepository{}, mockTaskRepo, mockBoardRepo, nil, zap.NewNop())

	_, err := svc.CreateComment(context.Background(), outsider, taskID, &dto.CreateCommentRequest{
		Content: "Drive-by",
	})

	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrCode(t, err))
}

func TestCreateComment_MissingTaskNotFound(t *testing.T) {
	mockTaskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewCommentService(&MockCommentRepository{}, mockTaskRepo, &MockBoardRepository{}, nil, zap.NewNop())

	_, err := svc.CreateComment(context.Background(), uuid.New(), uuid.New(), &dto.CreateCommentRequest{
		Content: "Into the void",
	})

	require.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, appErrCode(t, err))
}

func TestListComments_PassesThroughRepositoryOrder(t *testing.T) {
	owner := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()

	first := testComment(uuid.New(), taskID, owner)
	second := testComment(uuid.New(), taskID, owner)

	mockCommentRepo := &MockCommentRepository{
		FindByTaskIDFunc: func(ctx context.Context, tID uuid.UUID) ([]*domain.Comment, error) {
			return []*domain.Comment{first, second}, nil
		},
	}
	mockTaskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return testTask(taskID, boardID, owner), nil
		},
	}
	mockBoardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return testBoard(boardID, owner), nil
		},
	}

	svc := NewCommentService(mockCommentRepo, mockTaskRepo, mockBoardRepo, nil, zap.NewNop())

	comments, err := svc.ListComments(context.Background(), owner, taskID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestGetComment_WrongTaskNotFound(t *testing.T) {
	owner := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()
	otherTaskID := uuid.New()

	comment := testComment(uuid.New(), otherTaskID, owner)

	mockCommentRepo := &MockCommentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return comment, nil
		},
	}
	mockTaskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return testTask(taskID, boardID, owner), nil
		},
	}
	mockBoardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return testBoard(boardID, owner), nil
		},
	}

	svc := NewCommentService(mockCommentRepo, mockTaskRepo, mockBoardRepo, nil, zap.NewNop())

	// The comment exists but under a different task
	_, err := svc.GetComment(context.Background(), owner, taskID, comment.ID)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, appErrCode(t, err))
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	owner := uuid.New()
	author := uuid.New()
	boardID := uuid.New()
	taskID := uuid.New()

	comment := testComment(uuid.New(), taskID, author)

	deleted := false
	mockCommentRepo := &MockCommentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return comment, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	mockTaskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return testTask(taskID, boardID, owner), nil
		},
	}
	mockBoardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return testBoard(boardID, owner, author), nil
		},
	}

	svc := NewCommentService(mockCommentRepo, mockTaskRepo, mockBoardRepo, nil, zap.NewNop())

	// Even the board owner cannot delete someone else's comment
	err := svc.DeleteComment(context.Background(), owner, taskID, comment.ID)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeForbidden, appErrCode(t, err))
	assert.False(t, deleted)

	require.NoError(t, svc.DeleteComment(context.Background(), author, taskID, comment.ID))
	assert.True(t, deleted)
}
