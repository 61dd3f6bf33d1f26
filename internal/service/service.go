package service

import (
	"context"
	"time"

	"mission_awareness/internal/logger"
	"mission_awareness/internal/models"
)

// Windows builds imaging windows from client-submitted activity records.
type Windows interface {
	BuildChronological(ctx context.Context, records []models.ActivityRecord) ([]models.ActivityRecord, error)
	BuildStreaming(ctx context.Context, records []models.ActivityRecord) ([]models.Window, error)
}

// Monitoring exposes read-only usage counters (requests, activities, windows).
type Monitoring interface {
	Stats(ctx context.Context) models.ServiceStats
}

// Reporter runs the background loop that logs periodic usage snapshots.
// Stop via context cancellation in main() for graceful shutdown.
type Reporter interface {
	Run(ctx context.Context, tick time.Duration)
}

// Info identifies the running service in stats, health, and log output.
type Info struct {
	Name    string
	Version string
}

// Service aggregates all sub-services.
type Service struct {
	Windows
	Monitoring
	Reporter
}

// NewService wires the concrete services around one shared usage tracker.
// recorder may be nil when no metrics backend is attached.
func NewService(info Info, log *logger.Logger, recorder UsageRecorder) *Service {
	usage := newUsageTracker(info, recorder)
	return &Service{
		Windows:    NewWindowsService(usage),
		Monitoring: NewMonitoringService(usage),
		Reporter:   NewReporterService(usage, log),
	}
}
