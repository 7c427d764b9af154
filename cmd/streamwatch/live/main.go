package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/cmd/streamwatch"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/internal/dbg"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/bus"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/datasource"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/datasource/feed"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/detector"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/engine"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/middleware"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	logger := dbg.NewProdLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info(fmt.Sprintf("streamwatch %s", streamwatch.Version))
	defer logger.Info("done")

	config, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("unable to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source := feed.NewSource(logger, config.Endpoint, config.Stream, config.QueueCapacity)
	if err := source.Connect(ctx); err != nil {
		logger.Fatal("unable to connect to feed", zap.Error(err))
	}
	defer source.Close()

	d, err := detector.NewStreamAnomalyDetector(config.DetectorOptions()...)
	if err != nil {
		logger.Fatal("unable to create detector", zap.Error(err))
	}

	// Create
	monitor := middleware.NewMonitor(MonitorFlags)
	telemetry := middleware.NewTelemetry(logger)

	router := bus.NewRouter(RouterEventCapacity)
	streamEngine := engine.NewEngine(logger, router, d)

	// Initialize
	router.OnObservation = telemetry.WithObservation(monitor.WithObservation(streamEngine.OnObservation))
	router.OnVerdict = telemetry.WithVerdict(monitor.WithVerdict(middleware.NoopVerdict))
	router.OnAnomaly = telemetry.WithAnomaly(monitor.WithAnomaly(middleware.NoopAnomaly))

	// Consume the feed until it closes or we are interrupted
	dispatcher := datasource.CreateObservationDispatcher(router, source)
	if err := <-router.ExecLoop(ctx, dispatcher); err != nil {
		if !errors.Is(err, feed.ErrClosed) && !errors.Is(err, context.Canceled) {
			logger.Error("error during live run", zap.Error(err))
		}
	}

	router.Statistics().Print()
	telemetry.PrintStatistics()
}
