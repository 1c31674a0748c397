package scantask

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/metrics"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/storage"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/target"
)

// RunAndPersist performs Attempt, injects the measured round-trip
// latency into a successful result, and hands it to store. Ping engine
// errors are logged and swallowed here, never propagated to the
// caller — per the propagation policy, a worker's failure must not
// abort the orchestrator. A panic raised during the task is recovered
// and logged the same way.
func RunAndPersist(ctx context.Context, store storage.Store, tgt target.Target) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("address", tgt.String()).Errorf("scan task panicked: %v", r)
		}
	}()

	start := time.Now()
	result := Attempt(ctx, tgt)
	elapsed := time.Since(start)

	metrics.PingOutcomesTotal.WithLabelValues(result.Outcome.String()).Inc()
	metrics.PingLatencySeconds.Observe(elapsed.Seconds())

	switch result.Outcome {
	case Success:
		result.Status.LatencyMillis = elapsed.Milliseconds()
		if err := store.UpdateServer(ctx, result.Status, tgt); err != nil {
			wrapped := pkgerrors.Wrapf(err, "persisting server %s", tgt)
			store.LogEvent(ctx, &tgt, storage.LogError, "STORAGE_ERROR", wrapped.Error())
			logrus.WithError(wrapped).WithField("address", tgt.String()).Error("failed to persist server")
			return
		}
		store.LogEvent(ctx, &tgt, storage.LogInfo, "SERVER_UPDATED", "server status recorded")
		logrus.WithFields(logrus.Fields{
			"address": tgt.String(),
			"type":    result.Status.ServerType,
			"latency": elapsed,
			"outcome": result.Outcome.String(),
		}).Info("SERVER_UPDATED")

	case ServerOptOut:
		store.LogEvent(ctx, &tgt, storage.LogInfo, "SERVER_OPT_OUT", "server opted out of listing")

	default:
		msg := "scan attempt failed"
		if result.Err != nil {
			msg = result.Err.Error()
		}
		store.LogEvent(ctx, &tgt, storage.LogWarn, result.Outcome.String(), msg)
		logrus.WithFields(logrus.Fields{
			"address": tgt.String(),
			"outcome": result.Outcome.String(),
		}).Debug("scan attempt did not yield a server")
	}
}
