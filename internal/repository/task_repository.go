package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	FindByAssigneeID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	FindByReviewerID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// taskRepositoryImpl is the GORM implementation of TaskRepository
type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a task by ID with its people and comments preloaded
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Reviewer").
		Preload("Comments").
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByBoardID finds all tasks on a board, ordered by creation time
func (r *taskRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Reviewer").
		Preload("Comments").
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByAssigneeID finds all tasks assigned to the user across boards
func (r *taskRepositoryImpl) FindByAssigneeID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Reviewer").
		Preload("Comments").
		Where("assignee_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByReviewerID finds all tasks the user reviews across boards
func (r *taskRepositoryImpl) FindByReviewerID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Reviewer").
		Preload("Comments").
		Where("reviewer_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Omit("Assignee", "Reviewer", "Board", "Comments").Save(task).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes a task and its comments in one transaction
func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Task{}, id).Error
	})
}

// PurgeDeletedBefore permanently removes tasks soft deleted before the cutoff
func (r *taskRepositoryImpl) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&domain.Task{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
