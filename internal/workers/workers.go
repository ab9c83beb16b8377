// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/logger"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers builds the workers enabled by cfg. The session sweeper is only
// started when sessions expire and a sweep interval is set.
func NewWorkers(cfg config.Workers, sessions Sweeper, sessionTTL time.Duration, logger *logger.Logger) *Workers {
	w := &Workers{logger: logger}

	if sessions != nil && sessionTTL > 0 && cfg.SessionSweepInterval > 0 {
		w.workers = append(w.workers, NewSessionSweeper(sessions, cfg.SessionSweepInterval, logger))
	}

	return w
}

// Len reports the number of enabled workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and blocks until all of them return. The first
// error cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}
	return g.Wait()
}
