package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"mission_awareness/internal/models"
)

func newTestWindows() *WindowsService {
	return NewWindowsService(newUsageTracker(Info{Name: "test", Version: "test"}, nil))
}

// ---- Chronological mode ----

func TestBuildChronological_SortsByStartTime(t *testing.T) {
	in := []models.ActivityRecord{
		record("s112", "2024-07-12T01:03:49Z", "2024-07-12T01:04:08Z", nil),
		record("s112", "2024-07-12T00:34:05Z", "2024-07-12T00:34:08Z", nil),
	}

	window, err := newTestWindows().BuildChronological(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(window))
	}
	if window[0].StartTime != "2024-07-12T00:34:05Z" || window[1].StartTime != "2024-07-12T01:03:49Z" {
		t.Fatalf("wrong order: %+v", window)
	}
}

func TestBuildChronological_StableOnEqualStartTimes(t *testing.T) {
	// B has the earlier end time; only start_time is a sort key, so the
	// submitted order must survive.
	in := []models.ActivityRecord{
		record("SKY-A", "2024-07-12T00:34:05Z", "2024-07-12T09:00:00Z", nil),
		record("SKY-B", "2024-07-12T00:34:05Z", "2024-07-12T00:35:00Z", nil),
	}

	window, err := newTestWindows().BuildChronological(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window[0].SatelliteHWID != "SKY-A" || window[1].SatelliteHWID != "SKY-B" {
		t.Fatalf("equal-key order not preserved: %+v", window)
	}
}

func TestBuildChronological_Idempotent(t *testing.T) {
	svc := newTestWindows()
	in := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T02:00:00Z", "2024-07-12T02:10:00Z", nil),
		record("SKY-002", "2024-07-12T00:30:00Z", "2024-07-12T00:40:00Z", nil),
		record("SKY-003", "2024-07-12T01:00:00Z", "2024-07-12T01:10:00Z", nil),
	}

	once, err := svc.BuildChronological(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := svc.BuildChronological(context.Background(), once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("resorting changed the sequence:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestBuildChronological_PermutationInvariant(t *testing.T) {
	svc := newTestWindows()
	base := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T00:30:00Z", "2024-07-12T00:40:00Z", nil),
		record("SKY-002", "2024-07-12T01:00:00Z", "2024-07-12T01:10:00Z", nil),
		record("SKY-003", "2024-07-12T02:00:00Z", "2024-07-12T02:10:00Z", nil),
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	var want []models.ActivityRecord
	for _, p := range perms {
		in := []models.ActivityRecord{base[p[0]], base[p[1]], base[p[2]]}
		got, err := svc.BuildChronological(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want == nil {
			want = got
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %v produced different output: %+v", p, got)
		}
	}
}

func TestBuildChronological_EmptyInput(t *testing.T) {
	window, err := newTestWindows().BuildChronological(context.Background(), []models.ActivityRecord{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window == nil || len(window) != 0 {
		t.Fatalf("expected empty non-nil window, got %#v", window)
	}
}

func TestBuildChronological_RoundTripsRecordsVerbatim(t *testing.T) {
	in := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T00:34:05+00:00", "2024-07-12T00:34:08.500Z", statePtr(models.StateScheduled)),
		record("SKY-002", "2024-07-12T01:03:49Z", "2024-07-12T01:04:08Z", nil),
	}

	window, err := newTestWindows().BuildChronological(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window[0].StartTime != "2024-07-12T00:34:05+00:00" || window[0].EndTime != "2024-07-12T00:34:08.500Z" {
		t.Fatalf("timestamp strings reformatted: %+v", window[0])
	}
	if window[0].ActivityState == nil || *window[0].ActivityState != models.StateScheduled {
		t.Fatalf("state dropped: %+v", window[0])
	}
	if window[1].ActivityState != nil {
		t.Fatalf("state invented for stateless activity: %+v", window[1])
	}
}

func TestBuildChronological_InvalidRecordFailsWholeRequest(t *testing.T) {
	in := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T00:34:05Z", "2024-07-12T00:34:08Z", nil),
		record("SKY-002", "2024-07-12", "2024-07-12T01:04:08Z", nil),
	}

	window, err := newTestWindows().BuildChronological(context.Background(), in)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if window != nil {
		t.Fatalf("expected no partial output, got %+v", window)
	}
}

// ---- Streaming mode ----

func TestBuildStreaming_StateChangeOpensWindow(t *testing.T) {
	in := []models.ActivityRecord{
		record("s112", "2024-07-12T00:34:05Z", "2024-07-12T00:34:08Z", statePtr(models.StateScheduled)),
		record("s112", "2024-07-12T00:37:58Z", "2024-07-12T00:38:20Z", statePtr(models.StateProposed)),
	}

	windows, err := newTestWindows().BuildStreaming(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 || len(windows[0]) != 1 || len(windows[1]) != 1 {
		t.Fatalf("expected two single-activity windows, got %+v", windows)
	}
	if *windows[0][0].ActivityState != models.StateScheduled || *windows[1][0].ActivityState != models.StateProposed {
		t.Fatalf("windows out of order: %+v", windows)
	}
}

func TestBuildStreaming_SameStateOverlapOpensWindow(t *testing.T) {
	// Second activity starts before the first ends.
	in := []models.ActivityRecord{
		record("s112", "2024-07-12T00:00:00Z", "2024-07-12T00:10:00Z", statePtr(models.StateScheduled)),
		record("s112", "2024-07-12T00:05:00Z", "2024-07-12T00:15:00Z", statePtr(models.StateScheduled)),
	}

	windows, err := newTestWindows().BuildStreaming(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 || len(windows[0]) != 1 || len(windows[1]) != 1 {
		t.Fatalf("expected two single-activity windows, got %+v", windows)
	}
}

func TestBuildStreaming_ExtendsRunWhenSameStateAndNonOverlapping(t *testing.T) {
	// The second activity starts exactly when the first ends; only a
	// strictly earlier start counts as an overlap.
	in := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T00:00:00Z", "2024-07-12T00:05:00Z", statePtr(models.StateScheduled)),
		record("SKY-001", "2024-07-12T00:05:00Z", "2024-07-12T00:10:00Z", statePtr(models.StateScheduled)),
		record("SKY-001", "2024-07-12T00:20:00Z", "2024-07-12T00:30:00Z", statePtr(models.StateScheduled)),
	}

	windows, err := newTestWindows().BuildStreaming(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 || len(windows[0]) != 3 {
		t.Fatalf("expected one window of three, got %+v", windows)
	}
}

func TestBuildStreaming_MissingStateFailsFast(t *testing.T) {
	in := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T00:00:00Z", "2024-07-12T00:05:00Z", statePtr(models.StateScheduled)),
		record("SKY-002", "2024-07-12T00:10:00Z", "2024-07-12T00:15:00Z", nil),
	}

	windows, err := newTestWindows().BuildStreaming(context.Background(), in)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got, want := err.Error(), "all activities must have 'activity_state'"; !strings.Contains(got, want) {
		t.Fatalf("message %q missing %q", got, want)
	}
	if windows != nil {
		t.Fatalf("expected no partial windows, got %+v", windows)
	}
}

func TestBuildStreaming_OverlapComparesImmediatePredecessorOnly(t *testing.T) {
	// B starts inside A and opens a new window. C also lies inside A's
	// span, but it only gets compared against B, whose end it clears, so
	// it extends B's window instead of opening a third one.
	in := []models.ActivityRecord{
		record("SKY-A", "2024-07-12T00:00:00Z", "2024-07-12T10:00:00Z", statePtr(models.StateScheduled)),
		record("SKY-B", "2024-07-12T00:05:00Z", "2024-07-12T00:06:00Z", statePtr(models.StateScheduled)),
		record("SKY-C", "2024-07-12T00:07:00Z", "2024-07-12T00:08:00Z", statePtr(models.StateScheduled)),
	}

	windows, err := newTestWindows().BuildStreaming(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d: %+v", len(windows), windows)
	}
	if len(windows[0]) != 1 || windows[0][0].SatelliteHWID != "SKY-A" {
		t.Fatalf("first window should hold only SKY-A: %+v", windows[0])
	}
	if len(windows[1]) != 2 || windows[1][0].SatelliteHWID != "SKY-B" || windows[1][1].SatelliteHWID != "SKY-C" {
		t.Fatalf("second window should hold SKY-B then SKY-C: %+v", windows[1])
	}
}

func TestBuildStreaming_PartitionReproducesChronologicalOrder(t *testing.T) {
	svc := newTestWindows()
	in := []models.ActivityRecord{
		record("SKY-003", "2024-07-12T02:00:00Z", "2024-07-12T02:10:00Z", statePtr(models.StateScheduled)),
		record("SKY-001", "2024-07-12T00:00:00Z", "2024-07-12T00:10:00Z", statePtr(models.StateScheduled)),
		record("SKY-002", "2024-07-12T00:05:00Z", "2024-07-12T00:15:00Z", statePtr(models.StateProposed)),
		record("SKY-004", "2024-07-12T03:00:00Z", "2024-07-12T03:10:00Z", statePtr(models.StateProposed)),
	}

	windows, err := svc.BuildStreaming(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var flattened []models.ActivityRecord
	for _, w := range windows {
		flattened = append(flattened, w...)
	}
	if len(flattened) != len(in) {
		t.Fatalf("partition changed cardinality: %d != %d", len(flattened), len(in))
	}

	chronological, err := svc.BuildChronological(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(flattened, chronological) {
		t.Fatalf("concatenated windows diverge from chronological order:\nwindows: %+v\nsorted:  %+v", flattened, chronological)
	}
}

func TestBuildStreaming_PermutationInvariant(t *testing.T) {
	svc := newTestWindows()
	base := []models.ActivityRecord{
		record("SKY-001", "2024-07-12T00:00:00Z", "2024-07-12T00:10:00Z", statePtr(models.StateScheduled)),
		record("SKY-002", "2024-07-12T00:10:00Z", "2024-07-12T00:20:00Z", statePtr(models.StateScheduled)),
		record("SKY-003", "2024-07-12T00:15:00Z", "2024-07-12T00:25:00Z", statePtr(models.StateProposed)),
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	var want []models.Window
	for _, p := range perms {
		in := []models.ActivityRecord{base[p[0]], base[p[1]], base[p[2]]}
		got, err := svc.BuildStreaming(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want == nil {
			want = got
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %v produced different partition: %+v", p, got)
		}
	}
}

func TestBuildStreaming_EmptyInput(t *testing.T) {
	windows, err := newTestWindows().BuildStreaming(context.Background(), []models.ActivityRecord{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if windows == nil || len(windows) != 0 {
		t.Fatalf("expected empty non-nil windows, got %#v", windows)
	}
}
