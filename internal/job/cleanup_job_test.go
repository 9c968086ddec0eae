package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"kanban-board-api/internal/repository"
)

// The job only ever calls PurgeDeletedBefore, so the embedded nil
// interface covers the rest of the repository surface.
type purgeRecorder struct {
	name  string
	calls *[]string
	count int64
	err   error
}

func (p *purgeRecorder) purge(cutoff time.Time) (int64, error) {
	*p.calls = append(*p.calls, p.name)
	return p.count, p.err
}

type stubBoardRepo struct {
	repository.BoardRepository
	rec *purgeRecorder
}

func (s *stubBoardRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.rec.purge(cutoff)
}

type stubTaskRepo struct {
	repository.TaskRepository
	rec *purgeRecorder
}

func (s *stubTaskRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.rec.purge(cutoff)
}

type stubCommentRepo struct {
	repository.CommentRepository
	rec *purgeRecorder
}

func (s *stubCommentRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.rec.purge(cutoff)
}

func TestCleanupJob_PurgesChildrenBeforeParents(t *testing.T) {
	var calls []string

	job := NewCleanupJob(
		&stubBoardRepo{rec: &purgeRecorder{name: "boards", calls: &calls, count: 1}},
		&stubTaskRepo{rec: &purgeRecorder{name: "tasks", calls: &calls, count: 2}},
		&stubCommentRepo{rec: &purgeRecorder{name: "comments", calls: &calls, count: 3}},
		30,
		zap.NewNop(),
	)

	job.Run()

	assert.Equal(t, []string{"comments", "tasks", "boards"}, calls)
}

func TestCleanupJob_ContinuesPastFailures(t *testing.T) {
	var calls []string

	job := NewCleanupJob(
		&stubBoardRepo{rec: &purgeRecorder{name: "boards", calls: &calls}},
		&stubTaskRepo{rec: &purgeRecorder{name: "tasks", calls: &calls, err: assert.AnError}},
		&stubCommentRepo{rec: &purgeRecorder{name: "comments", calls: &calls, err: assert.AnError}},
		30,
		zap.NewNop(),
	)

	// A failing purge must not stop the remaining ones
	job.Run()

	assert.Equal(t, []string{"comments", "tasks", "boards"}, calls)
}
