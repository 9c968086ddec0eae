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

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, principal uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardWriteResponse, error)
	ListBoards(ctx context.Context, principal uuid.UUID) ([]dto.BoardSummaryResponse, error)
	GetBoard(ctx context.Context, principal uuid.UUID, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	UpdateBoard(ctx context.Context, principal uuid.UUID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardWriteResponse, error)
	DeleteBoard(ctx context.Context, principal uuid.UUID, boardID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		userRepo:  userRepo,
		metrics:   m,
		logger:    logger,
	}
}

// boardSnapshot builds the authorization snapshot from a loaded board
func boardSnapshot(board *domain.Board) authz.Snapshot {
	return authz.Snapshot{
		BoardOwnerID:   board.OwnerID,
		BoardMemberIDs: board.MemberIDs(),
	}
}

// CreateBoard creates a new board owned by the principal. The owner is
// always part of the member set, whether or not the request listed it.
func (s *boardServiceImpl) CreateBoard(ctx context.Context, principal uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardWriteResponse, error) {
	memberIDs, err := s.resolveMemberIDs(ctx, principal, req.Members)
	if err != nil {
		return nil, err
	}

	board := &domain.Board{
		Title:   req.Title,
		OwnerID: principal,
	}
	for _, userID := range memberIDs {
		board.Members = append(board.Members, domain.BoardMember{UserID: userID})
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Info("Board created",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", principal.String()),
		zap.Int("member_count", len(memberIDs)))

	// Reload so the member users and owner come back populated
	created, err := s.boardRepo.FindByID(ctx, board.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load created board", err.Error())
	}

	resp := dto.ToBoardWriteResponse(created)
	return &resp, nil
}

// ListBoards returns summaries of every board the principal owns or
// belongs to. Counts are recomputed from live relations on each call.
func (s *boardServiceImpl) ListBoards(ctx context.Context, principal uuid.UUID) ([]dto.BoardSummaryResponse, error) {
	boards, err := s.boardRepo.FindByUserID(ctx, principal)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch boards", err.Error())
	}

	summaries := make([]dto.BoardSummaryResponse, 0, len(boards))
	for _, board := range boards {
		summaries = append(summaries, dto.ToBoardSummaryResponse(board))
	}
	return summaries, nil
}

// GetBoard returns the board detail. Existence is checked before
// authorization so missing and forbidden boards stay distinguishable.
func (s *boardServiceImpl) GetBoard(ctx context.Context, principal uuid.UUID, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(principal, authz.ActionBoardRead, boardSnapshot(board)).Allowed() {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}

	resp := dto.ToBoardDetailResponse(board)
	return &resp, nil
}

// UpdateBoard updates the title and/or replaces the member set. When a
// submitted member list omits the owner it is silently re-included.
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, principal uuid.UUID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardWriteResponse, error) {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(principal, authz.ActionBoardUpdate, boardSnapshot(board)).Allowed() {
		return nil, response.NewForbiddenError("You do not have access to this board", "")
	}

	// Validate the member list before anything is written, so a rejected
	// update cannot leave a new title behind
	var memberIDs []uuid.UUID
	if req.Members != nil {
		memberIDs, err = s.resolveMemberIDs(ctx, board.OwnerID, *req.Members)
		if err != nil {
			return nil, err
		}
	}
	if req.Title != nil {
		board.Title = *req.Title
	}

	switch {
	case req.Title != nil && req.Members != nil:
		err = s.boardRepo.UpdateWithMembers(ctx, board, memberIDs)
	case req.Title != nil:
		err = s.boardRepo.Update(ctx, board)
	case req.Members != nil:
		err = s.boardRepo.ReplaceMembers(ctx, board.ID, memberIDs)
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}

	updated, err := s.boardRepo.FindByID(ctx, board.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load updated board", err.Error())
	}

	resp := dto.ToBoardWriteResponse(updated)
	return &resp, nil
}

// DeleteBoard deletes a board and cascades to its tasks and comments.
// Owner only.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, principal uuid.UUID, boardID uuid.UUID) error {
	board, err := s.findBoard(ctx, boardID)
	if err != nil {
		return err
	}

	if !authz.Decide(principal, authz.ActionBoardDelete, boardSnapshot(board)).Allowed() {
		return response.NewForbiddenError("Only the board owner can delete a board", "")
	}

	if err := s.boardRepo.Delete(ctx, board.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	s.logger.Info("Board deleted",
		zap.String("board_id", board.ID.String()),
		zap.String("owner_id", board.OwnerID.String()))
	return nil
}

// findBoard loads a board or maps the miss to a NotFound error
func (s *boardServiceImpl) findBoard(ctx context.Context, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}
	return board, nil
}

// resolveMemberIDs validates that every submitted member id belongs to
// an existing user and force-includes the owner. Returns the normalized,
// de-duplicated member set.
func (s *boardServiceImpl) resolveMemberIDs(ctx context.Context, ownerID uuid.UUID, submitted []uuid.UUID) ([]uuid.UUID, error) {
	unique := make([]uuid.UUID, 0, len(submitted)+1)
	seen := make(map[uuid.UUID]struct{}, len(submitted)+1)
	for _, id := range submitted {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.userRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve members", err.Error())
	}
	if len(users) != len(unique) {
		return nil, response.NewValidationError("One or more member ids do not resolve to existing users", "")
	}

	if _, ok := seen[ownerID]; !ok {
		unique = append(unique, ownerID)
	}
	return unique, nil
}
