package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kanban-board-api/internal/repository"
)

// CleanupJob permanently removes rows that have been soft deleted for
// longer than the retention window. Children purge before parents so a
// partial run never orphans rows.
type CleanupJob struct {
	boardRepo     repository.BoardRepository
	taskRepo      repository.TaskRepository
	commentRepo   repository.CommentRepository
	retentionDays int
	logger        *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
	retentionDays int,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		boardRepo:     boardRepo,
		taskRepo:      taskRepo,
		commentRepo:   commentRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Run executes the purge. Satisfies cron.Job.
func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)
	j.logger.Info("Starting soft-delete purge",
		zap.Time("cutoff", cutoff),
		zap.Int("retention_days", j.retentionDays))

	var total int64

	purged, err := j.commentRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge comments", zap.Error(err))
	} else {
		total += purged
	}

	purged, err = j.taskRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge tasks", zap.Error(err))
	} else {
		total += purged
	}

	purged, err = j.boardRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to purge boards", zap.Error(err))
	} else {
		total += purged
	}

	j.logger.Info("Soft-delete purge completed", zap.Int64("rows_purged", total))
}
