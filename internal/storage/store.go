// Package storage defines the async key/value interface the scan
// orchestrator needs over discovered addresses, plus an in-memory
// reference implementation for tests and dry-run use.
package storage

import (
	"context"
	"time"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/status"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

// LogLevel mirrors the severity levels the orchestrator hands to
// Store.LogEvent; a real backend maps these onto its own column/tag.
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogInfo:
		return "info"
	case LogWarn:
		return "warn"
	case LogError:
		return "error"
	default:
		return "unknown"
	}
}

// Address is a known server address as persisted by a Store: the IPv4
// offset from 0.0.0.0, the port it was last seen on, and the time of
// that observation.
type Address struct {
	Offset   int64
	Port     uint16
	LastSeen time.Time
}

// Target converts a stored Address back into a target.Target for use by
// the ping engine.
func (a Address) Target() target.Target {
	return target.FromUint32(uint32(a.Offset), a.Port)
}

// Store is the only persistence surface the core requires. A real
// backend (database, object store) is an external collaborator; this
// package ships only the interface and an in-memory reference
// implementation.
type Store interface {
	// StreamServersOrderedByLastSeen streams every known address ordered
	// by last_seen ascending. The returned channels close together when
	// the stream is exhausted or ctx is canceled.
	StreamServersOrderedByLastSeen(ctx context.Context) (<-chan Address, <-chan error)

	// CountServers returns the number of known addresses.
	CountServers(ctx context.Context) (int64, error)

	// UpdateServer records a fresh observation of tgt with the given
	// parsed status.
	UpdateServer(ctx context.Context, st status.ServerStatus, tgt target.Target) error

	// LogEvent records a structured event, optionally scoped to an
	// address. Implementations must not block the caller on a slow sink.
	LogEvent(ctx context.Context, addr *target.Target, level LogLevel, code, message string)
}
