package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/status"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

// MemStore is a mutex-guarded in-memory Store. It is a reference
// implementation and local/dry-run default, not a production datastore:
// it retains every address indefinitely and holds the full set in
// memory, by design — StreamServersOrderedByLastSeen requires the full
// history, which a TTL-evicting cache would violate.
type MemStore struct {
	mu       sync.Mutex
	byOffset map[int64]Address
}

// NewMemStore returns an empty MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{byOffset: make(map[int64]Address)}
}

func (m *MemStore) StreamServersOrderedByLastSeen(ctx context.Context) (<-chan Address, <-chan error) {
	out := make(chan Address)
	errc := make(chan error, 1)

	m.mu.Lock()
	snapshot := make([]Address, 0, len(m.byOffset))
	for _, a := range m.byOffset {
		snapshot = append(snapshot, a)
	}
	m.mu.Unlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].LastSeen.Before(snapshot[j].LastSeen)
	})

	go func() {
		defer close(out)
		defer close(errc)
		for _, a := range snapshot {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
			select {
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			case out <- a:
			}
		}
	}()

	return out, errc
}

func (m *MemStore) CountServers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byOffset)), nil
}

func (m *MemStore) UpdateServer(ctx context.Context, st status.ServerStatus, tgt target.Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byOffset[int64(tgt.Uint32())] = Address{
		Offset:   int64(tgt.Uint32()),
		Port:     tgt.Port(),
		LastSeen: time.Now(),
	}
	return nil
}

func (m *MemStore) LogEvent(ctx context.Context, addr *target.Target, level LogLevel, code, message string) {
	entry := logrus.WithFields(logrus.Fields{"code": code})
	if addr != nil {
		entry = entry.WithField("address", addr.String())
	}
	switch level {
	case LogWarn:
		entry.Warn(message)
	case LogError:
		entry.Error(message)
	default:
		entry.Info(message)
	}
}
