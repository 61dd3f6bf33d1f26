package service

import (
	"context"
	"sync/atomic"
	"time"

	"mission_awareness/internal/models"
)

// UsageRecorder mirrors usage increments into an external metrics backend.
// Implementations must be safe for concurrent use.
type UsageRecorder interface {
	AddWindowUsage(activities, windows int)
}

// usageTracker accumulates process-local usage counters shared by the
// windows, monitoring, and reporter services. Counters reset on restart;
// submitted activities are never retained.
type usageTracker struct {
	info      Info
	startedAt time.Time
	recorder  UsageRecorder

	chronologicalRequests atomic.Int64
	streamingRequests     atomic.Int64
	activitiesProcessed   atomic.Int64
	windowsBuilt          atomic.Int64
}

func newUsageTracker(info Info, recorder UsageRecorder) *usageTracker {
	return &usageTracker{info: info, startedAt: time.Now().UTC(), recorder: recorder}
}

func (u *usageTracker) recordChronological(activities int) {
	u.chronologicalRequests.Add(1)
	u.activitiesProcessed.Add(int64(activities))
	if u.recorder != nil {
		u.recorder.AddWindowUsage(activities, 0)
	}
}

func (u *usageTracker) recordStreaming(activities, windows int) {
	u.streamingRequests.Add(1)
	u.activitiesProcessed.Add(int64(activities))
	u.windowsBuilt.Add(int64(windows))
	if u.recorder != nil {
		u.recorder.AddWindowUsage(activities, windows)
	}
}

func (u *usageTracker) snapshot() models.ServiceStats {
	return models.ServiceStats{
		Service:               u.info.Name,
		Version:               u.info.Version,
		StartedAt:             u.startedAt,
		UptimeSeconds:         int64(time.Since(u.startedAt).Seconds()),
		ChronologicalRequests: u.chronologicalRequests.Load(),
		StreamingRequests:     u.streamingRequests.Load(),
		ActivitiesProcessed:   u.activitiesProcessed.Load(),
		WindowsBuilt:          u.windowsBuilt.Load(),
	}
}

// MonitoringService exposes usage snapshots for the stats endpoint.
type MonitoringService struct {
	usage *usageTracker
}

func NewMonitoringService(usage *usageTracker) *MonitoringService {
	return &MonitoringService{usage: usage}
}

// Stats returns the current usage snapshot.
func (s *MonitoringService) Stats(ctx context.Context) models.ServiceStats {
	return s.usage.snapshot()
}
