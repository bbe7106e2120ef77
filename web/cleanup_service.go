package web

import (
	"context"
	"time"

	"concept-graph/config"
	"concept-graph/store"

	"go.uber.org/zap"
)

// CleanupService removes editor sessions that have been idle past the
// retention age. The LRU store also evicts on capacity; this sweep handles
// stale sessions that never get pushed out.
type CleanupService struct {
	sessions *store.SessionStore
	logger   *zap.Logger
}

// NewCleanupService creates a new cleanup service instance
func NewCleanupService(sessions *store.SessionStore, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		sessions: sessions,
		logger:   logger,
	}
}

// CleanupStaleSessions deletes sessions idle longer than maxAge and returns
// the number deleted.
func (cs *CleanupService) CleanupStaleSessions(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoffTime := time.Now().Add(-maxAge)

	cs.logger.Info("Starting stale session cleanup",
		zap.Time("cutoff_time", cutoffTime),
		zap.Duration("max_age", maxAge))

	staleSessions := cs.sessions.Stale(cutoffTime)
	if len(staleSessions) == 0 {
		cs.logger.Debug("No stale sessions found")
		return 0, nil
	}

	for _, sessionID := range staleSessions {
		cs.sessions.Delete(sessionID)
		cs.logger.Debug("Deleted stale session", zap.String("session_id", sessionID.String()))
	}

	cs.logger.Info("Stale session cleanup completed",
		zap.Int("sessions_deleted", len(staleSessions)),
		zap.Int("sessions_remaining", cs.sessions.Len()))

	return len(staleSessions), nil
}

// StartSessionCleanup runs the cleanup sweep on a fixed interval until the
// context is cancelled. A no-op when cleanup is disabled in config.
func StartSessionCleanup(ctx context.Context, cfg *config.Config, service *CleanupService, logger *zap.Logger) {
	if !cfg.CleanupEnabled {
		logger.Info("Session cleanup disabled")
		return
	}

	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	logger.Info("Session cleanup started",
		zap.Duration("interval", cfg.CleanupInterval),
		zap.Duration("retention_age", cfg.SessionRetentionAge))

	for {
		select {
		case <-ticker.C:
			if _, err := service.CleanupStaleSessions(ctx, cfg.SessionRetentionAge); err != nil {
				logger.Error("Session cleanup failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
