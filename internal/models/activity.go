package models

import "time"

// ActivityState marks the commitment level of an imaging activity.
type ActivityState string

const (
	StateScheduled ActivityState = "scheduled"
	StateProposed  ActivityState = "proposed"
)

// Valid reports whether the state is one of the known values.
func (s ActivityState) Valid() bool {
	return s == StateScheduled || s == StateProposed
}

// ActivityRecord is the wire form of a single imaging activity as submitted
// by (and echoed back to) clients. Timestamps stay strings here so responses
// reproduce them byte-for-byte; ActivityState is a pointer so absence and
// presence are distinguishable.
type ActivityRecord struct {
	SatelliteHWID string         `json:"satellite_hw_id"`          // opaque, passed through untouched
	StartTime     string         `json:"start_time"`               // ISO 8601 instant, e.g. "2024-07-12T00:34:05Z"
	EndTime       string         `json:"end_time"`                 // ISO 8601 instant
	ActivityState *ActivityState `json:"activity_state,omitempty"` // "scheduled" | "proposed", optional
}

// ImagingActivity is the normalized, request-local representation of one
// imaging pass. It carries parsed instants for ordering alongside the
// original timestamp strings for exact round-trip in output. Immutable
// after construction and discarded with the request.
type ImagingActivity struct {
	SatelliteHWID string
	Start         time.Time
	End           time.Time
	StartRaw      string
	EndRaw        string
	State         *ActivityState
}

// Record converts the activity back to its wire form, emitting the original
// timestamp strings and including activity_state only when it was present
// on input.
func (a ImagingActivity) Record() ActivityRecord {
	return ActivityRecord{
		SatelliteHWID: a.SatelliteHWID,
		StartTime:     a.StartRaw,
		EndTime:       a.EndRaw,
		ActivityState: a.State,
	}
}

// Window is a maximal run of consecutive, same-state activities in start-time
// order, where no activity starts before its immediate predecessor ends.
type Window []ActivityRecord

// ServiceStats is a point-in-time snapshot of process-local usage counters.
// Nothing here persists across restarts; activities themselves are never
// stored.
type ServiceStats struct {
	Service               string    `json:"service"`
	Version               string    `json:"version"`
	StartedAt             time.Time `json:"started_at"`
	UptimeSeconds         int64     `json:"uptime_seconds"`
	ChronologicalRequests int64     `json:"chronological_requests"`
	StreamingRequests     int64     `json:"streaming_requests"`
	ActivitiesProcessed   int64     `json:"activities_processed"`
	WindowsBuilt          int64     `json:"windows_built"`
}
