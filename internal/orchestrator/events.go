package orchestrator

import "github.com/sirupsen/logrus"

// Structured event codes emitted at meaningful orchestrator
// transitions. BOT_SCAN_COMPLETE belongs to the separate bot-joining
// helper and has no emitter here.
const (
	eventScanStart         = "SCAN_START"
	eventHostFound         = "HOST_FOUND"
	eventWorkerError       = "WORKER_ERROR"
	eventSupervisorRestart = "SUPERVISOR_RESTART"
)

func logScanStart(mode string, fields logrus.Fields) {
	entry := logrus.WithField("event", eventScanStart).WithField("mode", mode)
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Info("scan starting")
}

func logHostFound(host string, port uint16) {
	logrus.WithFields(logrus.Fields{
		"event": eventHostFound,
		"host":  host,
		"port":  port,
	}).Debug("host discovered")
}

func logWorkerError(err error, context string) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"event":   eventWorkerError,
		"context": context,
	}).Error("worker error")
}

func logSupervisorRestart(attempt int, backoff string, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"event":   eventSupervisorRestart,
		"attempt": attempt,
		"backoff": backoff,
	}).Error("supervisor restarting iteration")
}
