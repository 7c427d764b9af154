package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/cmd/streamwatch"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/internal/dbg"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/bus"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/datasource"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/datasource/historical"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/detector"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/engine"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/middleware"
)

func main() {
	logger := dbg.NewDevLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info(fmt.Sprintf("streamwatch %s", streamwatch.Version))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source := historical.NewSource[historical.BinaryObservation](ObservationSource)
	if err := source.Open(); err != nil {
		logger.Fatal("error opening observation source", zap.Error(err))
	}
	defer source.Close()

	reader := historical.NewObservationReader(source, Stream, ReplayStart, ReplayEnd)

	d, err := detector.NewStreamAnomalyDetector()
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

	// Execute the replay
	dispatcher := datasource.CreateObservationDispatcher(router, reader)
	if err := <-router.ExecLoop(ctx, dispatcher); err != nil {
		if !errors.Is(err, historical.ErrEof) && !errors.Is(err, context.Canceled) {
			logger.Error("error during replay", zap.Error(err))
		}
	}

	router.Statistics().Print()
	telemetry.PrintStatistics()
}
