package service

import (
	"context"
	"time"

	"mission_awareness/internal/logger"
)

// ReporterService periodically logs a usage snapshot so operators can follow
// throughput from the logs alone, without scraping /metrics.
type ReporterService struct {
	usage *usageTracker
	log   *logger.Logger
}

// NewReporterService returns a reporter writing to the given logger.
func NewReporterService(usage *usageTracker, log *logger.Logger) *ReporterService {
	return &ReporterService{usage: usage, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *ReporterService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.logSnapshot()
		}
	}
}

func (s *ReporterService) logSnapshot() {
	if s.log == nil {
		return
	}
	snap := s.usage.snapshot()
	s.log.Infow("usage snapshot",
		"uptime_s", snap.UptimeSeconds,
		"chronological_requests", snap.ChronologicalRequests,
		"streaming_requests", snap.StreamingRequests,
		"activities_processed", snap.ActivitiesProcessed,
		"windows_built", snap.WindowsBuilt,
	)
}
