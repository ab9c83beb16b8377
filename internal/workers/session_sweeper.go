package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-session-auth/internal/logger"
)

// SessionSweeper periodically deletes expired sessions. Expired sessions are
// already invisible to lookups; sweeping only reclaims storage.
type SessionSweeper struct {
	sessions Sweeper
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionSweeper(sessions Sweeper, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once per interval until ctx is cancelled. A failed sweep is
// logged and retried on the next tick.
func (s *SessionSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	n, err := s.sessions.Sweep(ctx)
	if err != nil {
		s.logger.Err(err).Msg("error sweeping expired sessions")
		return
	}
	if n > 0 {
		s.logger.Debug().Int64("removed", n).Msg("expired sessions swept")
	}
}
