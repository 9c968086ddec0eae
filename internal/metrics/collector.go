package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes the entity-count gauges periodically
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(60 * time.Second),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics. The first collection runs immediately.
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers the entity counts
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts := []struct {
		table string
		set   func(int64)
	}{
		{"users", c.metrics.SetUsersTotal},
		{"boards", c.metrics.SetBoardsTotal},
		{"tasks", c.metrics.SetTasksTotal},
		{"comments", c.metrics.SetCommentsTotal},
	}

	for _, entry := range counts {
		var count int64
		if err := c.db.WithContext(ctx).Table(entry.table).Where("deleted_at IS NULL").Count(&count).Error; err != nil {
			c.logger.Error("Failed to count rows for metrics",
				zap.String("table", entry.table),
				zap.Error(err))
			continue
		}
		entry.set(count)
	}
}
