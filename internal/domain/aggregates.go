package domain

// BoardAggregates holds the derived counts for a board. They are
// computed from live relations on every read and never stored.
type BoardAggregates struct {
	MemberCount        int
	TasksCount         int
	TasksToDoCount     int
	TasksHighPrioCount int
}

// ComputeBoardAggregates derives the counts from a board's loaded
// member and task sets
func ComputeBoardAggregates(board *Board) BoardAggregates {
	agg := BoardAggregates{
		MemberCount: len(board.Members),
		TasksCount:  len(board.Tasks),
	}
	for i := range board.Tasks {
		if board.Tasks[i].Status == TaskStatusToDo {
			agg.TasksToDoCount++
		}
		if board.Tasks[i].Priority == TaskPriorityHigh {
			agg.TasksHighPrioCount++
		}
	}
	return agg
}
