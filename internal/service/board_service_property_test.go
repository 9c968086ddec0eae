package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
)

// For any submitted member list (0-50 UUIDs, with or without the owner,
// with or without duplicates), the member set handed to the repository
// contains the owner exactly once and every submitted id exactly once
func TestProperty_OwnerAlwaysInMemberSet(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Owner is part of the created member set exactly once", prop.ForAll(
		func(memberCount int, includeOwner bool, withDuplicates bool) bool {
			owner := uuid.New()
			boardID := uuid.New()

			submitted := make([]uuid.UUID, 0, memberCount+2)
			for i := 0; i < memberCount; i++ {
				submitted = append(submitted, uuid.New())
			}
			if includeOwner {
				submitted = append(submitted, owner)
			}
			if withDuplicates && len(submitted) > 0 {
				submitted = append(submitted, submitted[0])
			}

			var createdMembers []uuid.UUID
			mockBoardRepo := &MockBoardRepository{
				CreateFunc: func(ctx context.Context, board *domain.Board) error {
					board.ID = boardID
					for _, m := range board.Members {
						createdMembers = append(createdMembers, m.UserID)
					}
					return nil
				},
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
					return testBoard(boardID, owner), nil
				},
			}

			svc := NewBoardService(mockBoardRepo, &MockUserRepository{}, nil, zap.NewNop())

			_, err := svc.CreateBoard(context.Background(), owner, &dto.CreateBoardRequest{
				Title:   "Generated Board",
				Members: submitted,
			})
			if err != nil {
				t.Logf("Unexpected error for %d members: %v", len(submitted), err)
				return false
			}

			ownerOccurrences := 0
			seen := make(map[uuid.UUID]int, len(createdMembers))
			for _, id := range createdMembers {
				seen[id]++
				if id == owner {
					ownerOccurrences++
				}
			}
			if ownerOccurrences != 1 {
				t.Logf("Owner appears %d times in member set", ownerOccurrences)
				return false
			}
			for _, id := range submitted {
				if seen[id] != 1 {
					t.Logf("Submitted member %s appears %d times", id, seen[id])
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 50),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// For any mix of task statuses and priorities, the board summary counts
// agree with a direct count over the underlying tasks
func TestProperty_SummaryCountsMatchTasks(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	statuses := []domain.TaskStatus{
		domain.TaskStatusToDo,
		domain.TaskStatusInProgress,
		domain.TaskStatusReview,
		domain.TaskStatusDone,
	}
	priorities := []domain.TaskPriority{
		domain.TaskPriorityLow,
		domain.TaskPriorityMedium,
		domain.TaskPriorityHigh,
	}

	properties.Property("Summary counts are consistent with task relations", prop.ForAll(
		func(taskCount int, memberCount int, seed int) bool {
			owner := uuid.New()
			boardID := uuid.New()

			board := testBoard(boardID, owner)
			for i := 0; i < memberCount; i++ {
				board.Members = append(board.Members, domain.BoardMember{
					BoardID: boardID,
					UserID:  uuid.New(),
				})
			}

			expectedToDo := 0
			expectedHigh := 0
			for i := 0; i < taskCount; i++ {
				status := statuses[(seed+i)%len(statuses)]
				priority := priorities[(seed+i*7)%len(priorities)]
				if status == domain.TaskStatusToDo {
					expectedToDo++
				}
				if priority == domain.TaskPriorityHigh {
					expectedHigh++
				}
				board.Tasks = append(board.Tasks, domain.Task{Status: status, Priority: priority})
			}

			mockBoardRepo := &MockBoardRepository{
				FindByUserIDFunc: func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
					return []*domain.Board{board}, nil
				},
			}

			svc := NewBoardService(mockBoardRepo, &MockUserRepository{}, nil, zap.NewNop())

			summaries, err := svc.ListBoards(context.Background(), owner)
			if err != nil {
				t.Logf("Unexpected error: %v", err)
				return false
			}
			if len(summaries) != 1 {
				t.Logf("Expected one summary, got %d", len(summaries))
				return false
			}

			s := summaries[0]
			if s.MemberCount != memberCount+1 {
				t.Logf("Expected %d members, got %d", memberCount+1, s.MemberCount)
				return false
			}
			if s.TasksCount != taskCount {
				t.Logf("Expected %d tasks, got %d", taskCount, s.TasksCount)
				return false
			}
			if s.TasksToDoCount != expectedToDo {
				t.Logf("Expected %d todo tasks, got %d", expectedToDo, s.TasksToDoCount)
				return false
			}
			if s.TasksHighPrioCount != expectedHigh {
				t.Logf("Expected %d high prio tasks, got %d", expectedHigh, s.TasksHighPrioCount)
				return false
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 20),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
