// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/chargeflow/internal/snapshot"
)

// Source produces one complete snapshot per call.
// Geometry and decoding live in the source; the poller only schedules.
type Source interface {
	Read() (snapshot.Snapshot, error)
}

// Factory builds a fresh Source. ONE attempt per call.
type Factory func() (Source, error)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	Name string
	Seq  uint64
	At   time.Time

	Snapshot snapshot.Snapshot
	Err      error // non-nil means the poll cycle failed; Snapshot is zero
}
