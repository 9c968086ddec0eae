package metrics

// IncrementUserRegistered increments the user registration counter
func (m *Metrics) IncrementUserRegistered() {
	m.safeExecute("IncrementUserRegistered", func() {
		m.UserRegisteredTotal.Inc()
	})
}

// IncrementBoardCreated increments the board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments the task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments the comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// SetUsersTotal sets the registered users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets the boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets the tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}

// SetCommentsTotal sets the comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}
