package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/metrics"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/scantask"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/storage"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

// RunRescan streams every known address from store ordered by
// last_seen, expands each into one job per port in [cfg.PortStart,
// cfg.PortEnd], and dispatches a bounded-concurrency worker per job.
// It returns once the address stream and all spawned workers have
// completed.
func RunRescan(ctx context.Context, cfg Config, store storage.Store) error {
	logScanStart("rescan", logrus.Fields{"concurrency": cfg.Concurrency})

	sem := newSemaphore(cfg.Concurrency)
	jobs := make(chan target.Target, 10)

	addrs, streamErrs := store.StreamServersOrderedByLastSeen(ctx)

	var producerErr error
	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		defer close(jobs)
		defer func() {
			if r := recover(); r != nil {
				producerErr = fmt.Errorf("orchestrator: rescan producer panicked: %v", r)
			}
		}()
		for addr := range addrs {
			for port := cfg.PortStart; port <= cfg.PortEnd; port++ {
				tgt := target.FromUint32(uint32(addr.Offset), uint16(port))
				select {
				case jobs <- tgt:
				case <-ctx.Done():
					return
				}
			}
		}
		producerErr = <-streamErrs
	}()

	var wg sync.WaitGroup
	for tgt := range jobs {
		sem.Acquire()
		wg.Add(1)
		go func(tgt target.Target) {
			defer wg.Done()
			defer sem.Release()
			defer metrics.ObserveWorkerStart()()
			scantask.RunAndPersist(ctx, store, tgt)
		}(tgt)
	}

	wg.Wait()
	<-producerDone
	return producerErr
}
