// Package pruner removes saved comparisons once they age out, keeping the
// history list and the database file small.
package pruner

import (
	"context"
	"log/slog"
	"time"

	"github.com/arnodenuijl/DistanceComparer-sub001/internal/db"
)

// Pruner periodically deletes comparisons older than MaxAge.
type Pruner struct {
	logger   *slog.Logger
	database *db.DB
	maxAge   time.Duration
	interval time.Duration
}

// New creates a Pruner that scans every interval.
func New(logger *slog.Logger, database *db.DB, maxAge, interval time.Duration) *Pruner {
	return &Pruner{
		logger:   logger,
		database: database,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Start runs one prune immediately, then on every tick until ctx is done.
func (p *Pruner) Start(ctx context.Context) {
	p.logger.Info("starting history pruner",
		slog.Duration("max_age", p.maxAge),
		slog.Duration("interval", p.interval))

	if err := p.RunOnce(ctx); err != nil {
		p.logger.Error("initial prune failed", slog.Any("error", err))
	}

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.RunOnce(ctx); err != nil {
					p.logger.Error("prune failed", slog.Any("error", err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// RunOnce prunes everything older than MaxAge.
func (p *Pruner) RunOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-p.maxAge)
	removed, err := p.database.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		p.logger.Info("pruned old comparisons",
			slog.Int64("removed", removed),
			slog.Time("cutoff", cutoff))
	}
	return nil
}
