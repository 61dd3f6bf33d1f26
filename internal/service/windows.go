package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mission_awareness/internal/models"
)

// WindowsService implements both imaging-window algorithms. It operates on
// request-local data only and is safe for arbitrary concurrent use; the
// shared usage tracker is the sole cross-request state and is atomic.
type WindowsService struct {
	usage *usageTracker
}

// NewWindowsService returns a window builder reporting into the given tracker.
func NewWindowsService(usage *usageTracker) *WindowsService {
	return &WindowsService{usage: usage}
}

// BuildChronological returns all activities re-sorted by ascending start
// time. The sort is stable, so activities with equal start times keep their
// submitted order; end times are never consulted. Output records carry the
// original timestamp strings verbatim and include activity_state only where
// it was present on input.
func (s *WindowsService) BuildChronological(ctx context.Context, records []models.ActivityRecord) ([]models.ActivityRecord, error) {
	activities, err := normalizeActivities(records)
	if err != nil {
		return nil, err
	}
	sortByStart(activities)

	window := make([]models.ActivityRecord, 0, len(activities))
	for _, act := range activities {
		window = append(window, act.Record())
	}
	s.usage.recordChronological(len(window))
	return window, nil
}

// BuildStreaming partitions the activities, after chronological sorting,
// into maximal runs of same-state activities where no activity starts
// before its immediate predecessor ends. Overlap is checked against the
// previous activity in sort order only, never against earlier members of
// the window. Every activity must carry an activity_state; that check runs
// before any sorting, so a failure yields no partial result.
func (s *WindowsService) BuildStreaming(ctx context.Context, records []models.ActivityRecord) ([]models.Window, error) {
	activities, err := normalizeActivities(records)
	if err != nil {
		return nil, err
	}
	for _, act := range activities {
		if act.State == nil {
			return nil, fmt.Errorf("%w: all activities must have 'activity_state' to build state windows", ErrValidation)
		}
	}
	sortByStart(activities)

	windows := make([]models.Window, 0)
	var current models.Window
	var lastState models.ActivityState
	var lastEnd time.Time
	for i, act := range activities {
		opensWindow := i == 0 || *act.State != lastState || act.Start.Before(lastEnd)
		if opensWindow {
			if len(current) > 0 {
				windows = append(windows, current)
			}
			current = models.Window{act.Record()}
		} else {
			current = append(current, act.Record())
		}
		lastState = *act.State
		lastEnd = act.End
	}
	if len(current) > 0 {
		windows = append(windows, current)
	}

	s.usage.recordStreaming(len(activities), len(windows))
	return windows, nil
}

// sortByStart stable-sorts by parsed start instant; equal keys keep input order.
func sortByStart(activities []models.ImagingActivity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Start.Before(activities[j].Start)
	})
}
