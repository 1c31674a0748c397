package orchestrator

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/status"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/storage"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

// closedLocalTarget binds an ephemeral local port and immediately
// closes it, so a subsequent dial fails fast with "connection refused"
// rather than waiting out a real network timeout.
func closedLocalTarget(t *testing.T) target.Target {
	t.Helper()
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	_, portStr, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())

	port := 0
	for _, c := range portStr {
		port = port*10 + int(c-'0')
	}
	tgt, err := target.New(net.ParseIP("127.0.0.1"), uint16(port))
	require.NoError(t, err)
	return tgt
}

func TestRunRescanCompletesOverKnownAddresses(t *testing.T) {
	store := storage.NewMemStore()
	addr1 := closedLocalTarget(t)
	addr2 := closedLocalTarget(t)
	require.NoError(t, store.UpdateServer(context.Background(), status.ServerStatus{}, addr1))
	require.NoError(t, store.UpdateServer(context.Background(), status.ServerStatus{}, addr2))

	// A single port per address keeps the job count equal to the
	// number of known addresses, since expanding the real port range
	// here would dial ports that are not the closed listener port.
	cfg := Config{PortStart: int(addr1.Port()), PortEnd: int(addr1.Port()), Concurrency: 8}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := RunRescan(ctx, cfg, store)
	require.NoError(t, err)
}
