package storage

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/status"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

func mustTarget(t *testing.T, ip string, port uint16) target.Target {
	t.Helper()
	tg, err := target.New(net.ParseIP(ip), port)
	require.NoError(t, err)
	return tg
}

func TestMemStoreUpdateAndCount(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	err := store.UpdateServer(ctx, status.ServerStatus{}, mustTarget(t, "1.2.3.4", 25565))
	require.NoError(t, err)

	count, err := store.CountServers(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// Updating the same address again does not grow the count.
	err = store.UpdateServer(ctx, status.ServerStatus{}, mustTarget(t, "1.2.3.4", 25565))
	require.NoError(t, err)
	count, err = store.CountServers(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestMemStoreStreamOrderedByLastSeen(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	older := mustTarget(t, "10.0.0.1", 25565)
	newer := mustTarget(t, "10.0.0.2", 25565)

	require.NoError(t, store.UpdateServer(ctx, status.ServerStatus{}, older))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, store.UpdateServer(ctx, status.ServerStatus{}, newer))

	out, errc := store.StreamServersOrderedByLastSeen(ctx)

	var seen []target.Target
	for a := range out {
		seen = append(seen, a.Target())
	}
	require.NoError(t, <-errc)

	require.Len(t, seen, 2)
	require.Equal(t, older, seen[0])
	require.Equal(t, newer, seen[1])
}

func TestMemStoreStreamRespectsCancellation(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	require.NoError(t, store.UpdateServer(ctx, status.ServerStatus{}, mustTarget(t, "10.0.0.1", 25565)))
	require.NoError(t, store.UpdateServer(ctx, status.ServerStatus{}, mustTarget(t, "10.0.0.2", 25565)))

	cancelCtx, cancel := context.WithCancel(context.Background())
	cancel()

	out, errc := store.StreamServersOrderedByLastSeen(cancelCtx)
	for range out {
	}
	require.ErrorIs(t, <-errc, context.Canceled)
}

func TestMemStoreLogEventDoesNotPanicWithNilAddress(t *testing.T) {
	store := NewMemStore()
	require.NotPanics(t, func() {
		store.LogEvent(context.Background(), nil, LogInfo, "TEST", "hello")
	})
}
