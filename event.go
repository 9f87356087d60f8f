package parcel

import "time"

// EventKind identifies the state change a [ChunkEvent] reports.
type EventKind int

const (
	// EventScheduled fires when a chunk task is handed to the runtime
	// (or, for sequential policies, just before it runs inline).
	EventScheduled EventKind = iota

	// EventDone fires when a chunk callable returns nil.
	EventDone

	// EventErrored fires when a chunk callable returns a non-nil error.
	EventErrored

	// EventPanicked fires when a chunk callable panics and the panic is
	// captured (Aggregate mode only; under Abort nothing is recovered and
	// no event fires).
	EventPanicked
)

// ChunkEvent describes one chunk state change. Register a hook with
// [Policy.WithOnEvent] to receive them.
type ChunkEvent struct {
	Kind  EventKind
	Chunk ChunkInfo

	// Phase is 0 for range-partitioned work, 1 for a scan's local
	// reduction phase, and 3 for a scan's output phase.
	Phase int

	// Err is the chunk's error for EventErrored, or the captured
	// *PanicError for EventPanicked. Nil otherwise.
	Err error

	// Duration is the chunk callable's wall-clock time. Zero for
	// EventScheduled.
	Duration time.Duration
}
