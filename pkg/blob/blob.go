// Package blob provides the key-value snapshot store the tracker persists
// its whole-collection state into. Backends share one contract: Get returns
// ErrNotFound for absent keys, Set replaces the value wholesale.
package blob

import "context"

// Store is a durable key-value blob store addressed by fixed logical keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Snapshot keys for the tracker's four persisted collections.
const (
	KeySetupComplete = "timetable:setup_complete"
	KeyCourses       = "timetable:courses"
	KeySlots         = "timetable:slots"
	KeyTimetable     = "timetable:timetable"
)
