package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	UpdateWithMembers(ctx context.Context, board *domain.Board, userIDs []uuid.UUID) error
	ReplaceMembers(ctx context.Context, boardID uuid.UUID, userIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create creates a new board together with its member rows
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a board by ID with members, owner and tasks preloaded
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members.User").
		Preload("Tasks").
		Preload("Tasks.Assignee").
		Preload("Tasks.Reviewer").
		Preload("Tasks.Comments").
		Where("id = ?", id).
		First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByUserID finds all boards the user owns or is a member of,
// ordered by creation time
func (r *boardRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Members.User").
		Preload("Tasks").
		Where("owner_id = ? OR id IN (?)", userID,
			r.db.Model(&domain.BoardMember{}).Select("board_id").Where("user_id = ?", userID)).
		Order("created_at ASC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update updates a board's own columns. Member rows are managed
// through ReplaceMembers.
func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	if err := r.db.WithContext(ctx).Omit("Members", "Tasks", "Owner").Save(board).Error; err != nil {
		return err
	}
	return nil
}

// UpdateWithMembers updates a board's own columns and swaps its member
// set in one transaction, so neither change lands without the other
func (r *boardRepositoryImpl) UpdateWithMembers(ctx context.Context, board *domain.Board, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Tasks", "Owner").Save(board).Error; err != nil {
			return err
		}
		return replaceMembersTx(tx, board.ID, userIDs)
	})
}

// ReplaceMembers swaps the full member set of a board in one transaction
func (r *boardRepositoryImpl) ReplaceMembers(ctx context.Context, boardID uuid.UUID, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceMembersTx(tx, boardID, userIDs)
	})
}

// replaceMembersTx removes the old member rows outright so the
// (board_id, user_id) unique index never collides with a re-added
// member, then inserts the new set
func replaceMembersTx(tx *gorm.DB, boardID uuid.UUID, userIDs []uuid.UUID) error {
	if err := tx.Unscoped().
		Where("board_id = ?", boardID).
		Delete(&domain.BoardMember{}).Error; err != nil {
		return err
	}

	if len(userIDs) == 0 {
		return nil
	}

	members := make([]*domain.BoardMember, 0, len(userIDs))
	for _, userID := range userIDs {
		members = append(members, &domain.BoardMember{
			BoardID: boardID,
			UserID:  userID,
		})
	}
	return tx.Create(&members).Error
}

// Delete soft deletes a board and cascades to its tasks, comments
// and member rows in one transaction
func (r *boardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("task_id IN (?)", tx.Model(&domain.Task{}).Select("id").Where("board_id = ?", id)).
			Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&domain.BoardMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Board{}, id).Error
	})
}

// PurgeDeletedBefore permanently removes boards and member rows that
// were soft deleted before the cutoff
func (r *boardRepositoryImpl) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&domain.Board{})
	if result.Error != nil {
		return 0, result.Error
	}
	purged := result.RowsAffected

	memberResult := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&domain.BoardMember{})
	if memberResult.Error != nil {
		return purged, memberResult.Error
	}
	return purged + memberResult.RowsAffected, nil
}
