package orchestrator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/metrics"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/scanengine"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/scantask"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/storage"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

// buildCommand resolves engine.Command for the targets/ports on this
// platform; overridden in tests to bypass the real privilege-escalation
// prefix on systems without passwordless sudo.
var buildCommand = scanengine.Command

// RunDiscovery launches the configured scan engine as a subprocess,
// parses its stdout line by line, and dispatches a bounded-concurrency
// worker per discovered hit. Stderr is drained concurrently into the
// log sink so a full pipe buffer never deadlocks the subprocess.
func RunDiscovery(ctx context.Context, cfg Config, store storage.Store, engine scanengine.Engine) error {
	logScanStart("discovery", logrus.Fields{"engine": cfg.ScanEngine, "concurrency": cfg.Concurrency})

	targets := cfg.Targets
	if _, isRustscan := engine.(scanengine.RustscanEngine); isRustscan {
		if _, _, cidrErr := net.ParseCIDR(targets); cidrErr == nil {
			hostFile := filepath.Join(os.TempDir(), fmt.Sprintf("serverseeker-hosts-%d.txt", os.Getpid()))
			if err := scanengine.ExpandCIDRToHostFile(targets, hostFile); err != nil {
				return pkgerrors.Wrap(err, "expanding cidr into rustscan host file")
			}
			defer os.Remove(hostFile)
			targets = hostFile
		}
	}

	bin, args, err := buildCommand(engine, targets, uint16(cfg.PortStart), uint16(cfg.PortEnd))
	if err != nil {
		return pkgerrors.Wrap(err, "building scan engine command")
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return pkgerrors.Wrap(err, "opening scan engine stdout")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return pkgerrors.Wrap(err, "opening scan engine stderr")
	}

	if err := cmd.Start(); err != nil {
		return pkgerrors.Wrap(err, "starting scan engine subprocess")
	}

	var stderrWg sync.WaitGroup
	stderrWg.Add(1)
	go func() {
		defer stderrWg.Done()
		drainStderr(stderr)
	}()

	sem := newSemaphore(cfg.Concurrency)
	var wg sync.WaitGroup

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		hit, ok, parseErr := engine.ParseLine(scanner.Text())
		if parseErr != nil {
			logWorkerError(parseErr, "parsing scan engine line")
			continue
		}
		if !ok {
			continue
		}

		logHostFound(hit.Host, hit.Port)

		tgt, err := targetFromHit(hit)
		if err != nil {
			logWorkerError(err, "parsing discovered address")
			continue
		}

		sem.Acquire()
		wg.Add(1)
		go func(tgt target.Target) {
			defer wg.Done()
			defer sem.Release()
			defer metrics.ObserveWorkerStart()()
			scantask.RunAndPersist(ctx, store, tgt)
		}(tgt)
	}
	scanErr := scanner.Err()

	wg.Wait()
	stderrWg.Wait()

	if waitErr := cmd.Wait(); waitErr != nil {
		return pkgerrors.Wrap(waitErr, "scan engine subprocess exited with error")
	}
	if scanErr != nil {
		return pkgerrors.Wrap(scanErr, "reading scan engine stdout")
	}
	return nil
}

func drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logrus.WithField("source", "scan-engine-stderr").Error(scanner.Text())
	}
}

func targetFromHit(hit scanengine.Hit) (target.Target, error) {
	ip := net.ParseIP(hit.Host)
	if ip == nil {
		return target.Target{}, fmt.Errorf("orchestrator: %q is not a valid IPv4 address", hit.Host)
	}
	return target.New(ip, hit.Port)
}
