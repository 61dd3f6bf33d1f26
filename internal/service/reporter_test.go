package service

import (
	"context"
	"testing"
	"time"

	"mission_awareness/internal/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestReporter_LogsSnapshotsUntilCanceled(t *testing.T) {
	usage := newUsageTracker(Info{Name: "test", Version: "test"}, nil)
	usage.recordChronological(2)

	log, logs := newObservedLogger()
	rep := NewReporterService(usage, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rep.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for logs.FilterMessage("usage snapshot").Len() == 0 {
		select {
		case <-deadline:
			t.Fatalf("no snapshot logged before deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("reporter did not stop on cancel")
	}

	entry := logs.FilterMessage("usage snapshot").All()[0]
	fields := entry.ContextMap()
	if fields["chronological_requests"] != int64(1) || fields["activities_processed"] != int64(2) {
		t.Fatalf("unexpected snapshot fields: %+v", fields)
	}
}

func TestReporter_NilLoggerStopsOnCancel(t *testing.T) {
	usage := newUsageTracker(Info{Name: "test", Version: "test"}, nil)
	rep := NewReporterService(usage, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rep.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("reporter did not stop on cancel")
	}
}
