package dto

import (
	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	Title   string      `json:"title" binding:"required,min=1,max=255"`
	Members []uuid.UUID `json:"members" binding:"omitempty,dive,uuid"`
}

// UpdateBoardRequest represents the request to update a board.
// Both fields are optional; omitted fields stay unchanged.
type UpdateBoardRequest struct {
	Title   *string      `json:"title" binding:"omitempty,min=1,max=255"`
	Members *[]uuid.UUID `json:"members" binding:"omitempty,dive,uuid"`
}

// BoardSummaryResponse is the list-style board representation with
// derived counts
type BoardSummaryResponse struct {
	ID                 uuid.UUID   `json:"id"`
	Title              string      `json:"title"`
	Members            []uuid.UUID `json:"members"`
	MemberCount        int         `json:"member_count"`
	TasksCount         int         `json:"tasks_count"`
	TasksToDoCount     int         `json:"tasks_to_do_count"`
	TasksHighPrioCount int         `json:"tasks_high_prio_count"`
	OwnerID            uuid.UUID   `json:"owner_id"`
}

// BoardDetailResponse is the detail-style board representation
type BoardDetailResponse struct {
	ID      uuid.UUID      `json:"id"`
	Title   string         `json:"title"`
	OwnerID uuid.UUID      `json:"owner_id"`
	Members []MiniUser     `json:"members"`
	Tasks   []TaskResponse `json:"tasks"`
}

// BoardWriteResponse is returned from board create and update
type BoardWriteResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	OwnerData   MiniUser   `json:"owner_data"`
	MembersData []MiniUser `json:"members_data"`
}

// ToBoardSummaryResponse builds the list representation from a board
// with members and tasks preloaded. Counts are derived on every call.
func ToBoardSummaryResponse(board *domain.Board) BoardSummaryResponse {
	agg := domain.ComputeBoardAggregates(board)
	return BoardSummaryResponse{
		ID:                 board.ID,
		Title:              board.Title,
		Members:            board.MemberIDs(),
		MemberCount:        agg.MemberCount,
		TasksCount:         agg.TasksCount,
		TasksToDoCount:     agg.TasksToDoCount,
		TasksHighPrioCount: agg.TasksHighPrioCount,
		OwnerID:            board.OwnerID,
	}
}

// ToBoardDetailResponse builds the detail representation from a board
// with members, tasks and task relations preloaded
func ToBoardDetailResponse(board *domain.Board) BoardDetailResponse {
	members := make([]MiniUser, 0, len(board.Members))
	for i := range board.Members {
		members = append(members, ToMiniUser(&board.Members[i].User))
	}

	tasks := make([]TaskResponse, 0, len(board.Tasks))
	for i := range board.Tasks {
		tasks = append(tasks, ToTaskResponse(&board.Tasks[i]))
	}

	return BoardDetailResponse{
		ID:      board.ID,
		Title:   board.Title,
		OwnerID: board.OwnerID,
		Members: members,
		Tasks:   tasks,
	}
}

// ToBoardWriteResponse builds the write-response representation from a
// board with owner and members preloaded
func ToBoardWriteResponse(board *domain.Board) BoardWriteResponse {
	members := make([]MiniUser, 0, len(board.Members))
	for i := range board.Members {
		members = append(members, ToMiniUser(&board.Members[i].User))
	}

	return BoardWriteResponse{
		ID:          board.ID,
		Title:       board.Title,
		OwnerData:   ToMiniUser(&board.Owner),
		MembersData: members,
	}
}
