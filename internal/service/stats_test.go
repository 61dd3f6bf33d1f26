package service

import (
	"context"
	"testing"

	"mission_awareness/internal/models"
)

type recorderStub struct {
	activities int
	windows    int
}

func (r *recorderStub) AddWindowUsage(activities, windows int) {
	r.activities += activities
	r.windows += windows
}

func TestUsageTracker_SnapshotAndRecorder(t *testing.T) {
	rec := &recorderStub{}
	usage := newUsageTracker(Info{Name: "mas-imaging-window-builder", Version: "1.0.0"}, rec)

	usage.recordChronological(3)
	usage.recordStreaming(4, 2)

	snap := usage.snapshot()
	if snap.Service != "mas-imaging-window-builder" || snap.Version != "1.0.0" {
		t.Fatalf("identity lost: %+v", snap)
	}
	if snap.ChronologicalRequests != 1 || snap.StreamingRequests != 1 {
		t.Fatalf("request counters wrong: %+v", snap)
	}
	if snap.ActivitiesProcessed != 7 || snap.WindowsBuilt != 2 {
		t.Fatalf("workload counters wrong: %+v", snap)
	}
	if snap.StartedAt.IsZero() || snap.UptimeSeconds < 0 {
		t.Fatalf("bad uptime fields: %+v", snap)
	}
	if rec.activities != 7 || rec.windows != 2 {
		t.Fatalf("recorder not mirrored: %+v", rec)
	}
}

func TestMonitoringService_Stats(t *testing.T) {
	usage := newUsageTracker(Info{Name: "test", Version: "test"}, nil)
	usage.recordStreaming(5, 3)

	st := NewMonitoringService(usage).Stats(context.Background())
	if st.StreamingRequests != 1 || st.ActivitiesProcessed != 5 || st.WindowsBuilt != 3 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestWindowsService_RecordsUsage(t *testing.T) {
	usage := newUsageTracker(Info{Name: "test", Version: "test"}, nil)
	svc := NewWindowsService(usage)

	in := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T00:00:00Z", "2024-07-12T00:10:00Z", statePtr(models.StateScheduled)),
		record("SKY-002", "2024-07-12T00:20:00Z", "2024-07-12T00:30:00Z", statePtr(models.StateProposed)),
	}
	if _, err := svc.BuildChronological(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.BuildStreaming(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := usage.snapshot()
	if snap.ChronologicalRequests != 1 || snap.StreamingRequests != 1 {
		t.Fatalf("request counters wrong: %+v", snap)
	}
	if snap.ActivitiesProcessed != 4 || snap.WindowsBuilt != 2 {
		t.Fatalf("workload counters wrong: %+v", snap)
	}

	// Failed requests never count.
	bad := []models.ActivityRecord{record("SKY-003", "bogus", "2024-07-12T01:00:00Z", nil)}
	if _, err := svc.BuildChronological(context.Background(), bad); err == nil {
		t.Fatalf("expected error")
	}
	if got := usage.snapshot().ChronologicalRequests; got != 1 {
		t.Fatalf("failed request was counted: %d", got)
	}
}
