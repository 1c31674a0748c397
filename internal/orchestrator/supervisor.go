package orchestrator

import (
	"context"
	"fmt"
	"time"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 60 * time.Second
)

// sleeper abstracts the backoff delay so tests can run without real
// wall-clock sleeps.
type sleeper func(ctx context.Context, d time.Duration)

func realSleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Iteration is one run of either scan mode, recovered by Supervise.
type Iteration func(ctx context.Context) error

// Supervise runs iteration repeatedly: a clean return resets the
// backoff and, if repeat is true, waits interIterationDelay (if
// nonzero) before running iteration again; a panic or error restarts
// iteration after a capped exponential backoff (doubling from 1s to a
// 60s ceiling). It returns when ctx is canceled or, with repeat=false,
// after the first clean iteration.
func Supervise(ctx context.Context, repeat bool, interIterationDelay time.Duration, iteration Iteration) {
	supervise(ctx, repeat, interIterationDelay, iteration, realSleep)
}

func supervise(ctx context.Context, repeat bool, interIterationDelay time.Duration, iteration Iteration, sleep sleeper) {
	backoff := initialBackoff
	attempt := 0

	for {
		if ctx.Err() != nil {
			return
		}

		err := runRecovered(ctx, iteration)
		if err == nil {
			backoff = initialBackoff
			attempt = 0
			if !repeat {
				return
			}
			if interIterationDelay > 0 {
				sleep(ctx, interIterationDelay)
				if ctx.Err() != nil {
					return
				}
			}
			continue
		}

		attempt++
		logSupervisorRestart(attempt, backoff.String(), err)

		sleep(ctx, backoff)
		if ctx.Err() != nil {
			return
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// runRecovered runs iteration, converting a panic into an error so the
// caller's backoff loop sees a uniform failure signal.
func runRecovered(ctx context.Context, iteration Iteration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("orchestrator: iteration panicked: %v", r)
		}
	}()
	return iteration(ctx)
}
