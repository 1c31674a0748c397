package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/itzg/go-flagsfiller"
	"github.com/sirupsen/logrus"

	"github.com/Drakiz3/ServerSeekerV2-1/internal/metrics"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/orchestrator"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/scanengine"
	"github.com/Drakiz3/ServerSeekerV2-1/internal/storage"
)

// rootConfig is the CLI flag surface. It deliberately stays a thin set
// of flags, not a config-file subsystem: there is no file loader, no
// hot reload, no CIDR-cache downloader here.
type rootConfig struct {
	orchestrator.Config

	Mode        string `default:"rescan" usage:"Scan mode: rescan or discovery"`
	Debug       bool   `default:"false" usage:"Enable debug logs"`
	MetricsBind string `usage:"Optional [host:port] to expose Prometheus metrics on /metrics"`
}

func main() {
	var cfg rootConfig
	filler := flagsfiller.New()
	if err := filler.Fill(flag.CommandLine, &cfg); err != nil {
		logrus.WithError(err).Fatal("failed to register CLI flags")
	}
	flag.Parse()

	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if cfg.PortStart <= 0 || cfg.PortEnd < cfg.PortStart {
		logrus.WithFields(logrus.Fields{
			"port_start": cfg.PortStart,
			"port_end":   cfg.PortEnd,
		}).Fatal("invalid port range configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		logrus.Info("received shutdown signal")
		cancel()
	}()

	if cfg.MetricsBind != "" {
		go metrics.ServeMetrics(ctx, cfg.MetricsBind)
	}

	store := storage.NewMemStore()

	iteration, err := buildIteration(cfg, store)
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure scan mode")
	}

	orchestrator.Supervise(ctx, cfg.Repeat, cfg.ScanDelay, iteration)
	logrus.Info("scan complete")
	os.Exit(0)
}

func buildIteration(cfg rootConfig, store storage.Store) (orchestrator.Iteration, error) {
	switch cfg.Mode {
	case "rescan":
		return func(ctx context.Context) error {
			return orchestrator.RunRescan(ctx, cfg.Config, store)
		}, nil

	case "discovery":
		engine, err := resolveEngine(cfg.ScanEngine)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			return orchestrator.RunDiscovery(ctx, cfg.Config, store, engine)
		}, nil

	default:
		logrus.WithField("mode", cfg.Mode).Fatal("unknown scan mode, expected rescan or discovery")
		return nil, nil
	}
}

func resolveEngine(name string) (scanengine.Engine, error) {
	switch name {
	case "masscan":
		return scanengine.MasscanEngine{}, nil
	case "rustscan":
		return scanengine.RustscanEngine{}, nil
	default:
		logrus.WithField("engine", name).Fatal("unknown scan engine, expected masscan or rustscan")
		return nil, nil
	}
}
