package service

import (
	"errors"
	"fmt"
	"time"

	"mission_awareness/internal/models"
)

// ErrValidation marks client-fault input: malformed timestamps, unknown
// state values, or a streaming request containing stateless activities.
// Handlers map it to a 400 response; everything else is a server fault.
var ErrValidation = errors.New("validation error")

// normalizeActivities converts wire records into normalized activities,
// failing on the first malformed record. The input slice is never mutated
// and no output is produced on failure.
func normalizeActivities(records []models.ActivityRecord) ([]models.ImagingActivity, error) {
	activities := make([]models.ImagingActivity, 0, len(records))
	for i, rec := range records {
		act, err := normalizeActivity(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: activity[%d]: %v", ErrValidation, i, err)
		}
		activities = append(activities, act)
	}
	return activities, nil
}

// normalizeActivity parses one record. Start/end ordering is deliberately
// not checked: inverted and zero-length intervals pass through unchanged.
func normalizeActivity(rec models.ActivityRecord) (models.ImagingActivity, error) {
	start, err := parseInstant(rec.StartTime)
	if err != nil {
		return models.ImagingActivity{}, fmt.Errorf("start_time: %v", err)
	}
	end, err := parseInstant(rec.EndTime)
	if err != nil {
		return models.ImagingActivity{}, fmt.Errorf("end_time: %v", err)
	}
	if rec.ActivityState != nil && !rec.ActivityState.Valid() {
		return models.ImagingActivity{}, fmt.Errorf("activity_state must be %q or %q, got %q",
			models.StateScheduled, models.StateProposed, *rec.ActivityState)
	}
	return models.ImagingActivity{
		SatelliteHWID: rec.SatelliteHWID,
		Start:         start,
		End:           end,
		StartRaw:      rec.StartTime,
		EndRaw:        rec.EndTime,
		State:         rec.ActivityState,
	}, nil
}

// parseInstant parses an ISO 8601 instant. A trailing "Z" designator and an
// explicit "+00:00" offset are equivalent; fractional seconds are accepted.
// Offset-less timestamps are rejected because activities must arrive
// timezone-resolved.
func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO 8601 timestamp: %q", s)
	}
	return t, nil
}
