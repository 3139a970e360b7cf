package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/MetinovAdik/kopuro-frontend/pkg/logger"
)

// ExpiredDeleter removes session records past their expiry.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RunCleanup deletes expired session records on every tick until the context
// is cancelled. Redis expires its keys itself; only the SQL-backed store
// needs this.
func RunCleanup(ctx context.Context, store ExpiredDeleter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := store.DeleteExpired(ctx, now)
			if err != nil {
				logger.Get().Warn("session cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Get().Info("expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
