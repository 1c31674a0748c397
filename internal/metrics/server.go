package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// ServeMetrics starts an HTTP server exposing the Prometheus registry
// on addr at /metrics, and shuts it down when ctx is canceled. It is
// optional observability, not request-path code; a bind failure is
// logged and does not abort the scan.
func ServeMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	logrus.WithField("address", addr).Info("metrics server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Warn("metrics server stopped")
	}
}
