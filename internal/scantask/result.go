package scantask

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/mcping"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/status"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

// attemptTimeout is the fresh per-attempt budget each of modern and
// legacy ping gets; a timed-out modern attempt still leaves a full
// budget for the legacy attempt.
const attemptTimeout = 5 * time.Second

// Result is the outcome of one task-level scan attempt.
type Result struct {
	Outcome Outcome
	Status  status.ServerStatus
	Err     error
}

// Attempt runs the modern-then-legacy ping sequence against tgt, each
// under its own fresh attemptTimeout, and returns the classified
// outcome. It never touches storage — RunAndPersist does that.
func Attempt(ctx context.Context, tgt target.Target) Result {
	raw, pingErr := attemptModern(ctx, tgt)
	if pingErr != nil {
		raw, pingErr = attemptLegacy(ctx, tgt)
	}
	if pingErr != nil {
		return Result{Outcome: classifyPingError(pingErr), Err: pingErr}
	}

	st, err := status.Parse([]byte(raw))
	if err != nil {
		return Result{Outcome: ParseResponse, Err: err}
	}

	if status.IsOptedOut(st.DescriptionFormatted) {
		return Result{Outcome: ServerOptOut, Status: st}
	}

	return Result{Outcome: Success, Status: st}
}

func attemptModern(ctx context.Context, tgt target.Target) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()
	return mcping.ModernPing(ctx, tgt)
}

func attemptLegacy(ctx context.Context, tgt target.Target) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()
	return mcping.LegacyPing(ctx, tgt)
}

// classifyPingError maps a ping-attempt error onto the task-level
// outcome enum using errors.Is/errors.As, never string matching.
func classifyPingError(err error) Outcome {
	if errors.Is(err, mcping.ErrMalformedResponse) {
		return MalformedResponse
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimedOut
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimedOut
	}
	return IoError
}
