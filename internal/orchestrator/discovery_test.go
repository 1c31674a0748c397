package orchestrator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/scanengine"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/storage"
)

// fakeDiscoveryEngine drives a trivial shell command that prints
// rustscan-style "Open host:port" lines, so RunDiscovery's subprocess
// wiring (stdout parsing, stderr draining, worker dispatch) can be
// exercised without a real port-scanner binary installed.
type fakeDiscoveryEngine struct {
	script string
}

func (f fakeDiscoveryEngine) BinaryPath() string { return "sh" }

func (f fakeDiscoveryEngine) BuildArgs(cidrOrHostFile string, portStart, portEnd uint16) ([]string, error) {
	return []string{"-c", f.script}, nil
}

func (f fakeDiscoveryEngine) ParseLine(line string) (scanengine.Hit, bool, error) {
	return scanengine.RustscanEngine{}.ParseLine(line)
}

func withoutSudoPrefix(t *testing.T) {
	t.Helper()
	original := buildCommand
	buildCommand = func(e scanengine.Engine, cidrOrHostFile string, portStart, portEnd uint16) (string, []string, error) {
		args, err := e.BuildArgs(cidrOrHostFile, portStart, portEnd)
		if err != nil {
			return "", nil, err
		}
		return e.BinaryPath(), args, nil
	}
	t.Cleanup(func() { buildCommand = original })
}

func TestRunDiscoveryParsesAndDispatches(t *testing.T) {
	withoutSudoPrefix(t)
	tgt := closedLocalTarget(t)
	script := fmt.Sprintf(
		"echo 'Starting rustscan' 1>&2; echo 'Open %s:%d'; echo 'note: done' 1>&2",
		tgt.IP().String(), tgt.Port(),
	)

	store := storage.NewMemStore()
	cfg := Config{PortStart: int(tgt.Port()), PortEnd: int(tgt.Port()), Concurrency: 4, Targets: "unused"}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := RunDiscovery(ctx, cfg, store, fakeDiscoveryEngine{script: script})
	require.NoError(t, err)
}

func TestRunDiscoveryPropagatesSubprocessExitFailure(t *testing.T) {
	withoutSudoPrefix(t)
	store := storage.NewMemStore()
	cfg := Config{PortStart: 1, PortEnd: 1, Concurrency: 4, Targets: "unused"}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := RunDiscovery(ctx, cfg, store, fakeDiscoveryEngine{script: "exit 1"})
	require.Error(t, err)
}
