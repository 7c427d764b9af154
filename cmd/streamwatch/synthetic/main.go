package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/cmd/streamwatch"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/internal/dbg"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/bus"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/datasource/synthetic"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/detector"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/engine"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/evaluation"
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

	rng := rand.New(rand.NewSource(Seed))
	generator := synthetic.NewSignalGenerator(Stream, rng, StartTime, SampleInterval, Steps)

	d, err := detector.NewStreamAnomalyDetector()
	if err != nil {
		logger.Fatal("unable to create detector", zap.Error(err))
	}

	// Create
	monitor := middleware.NewMonitor(MonitorFlags)
	telemetry := middleware.NewTelemetry(logger)
	scorecard := evaluation.NewScorecard()

	router := bus.NewRouter(RouterEventCapacity)
	streamEngine := engine.NewEngine(logger, router, d)

	// Initialize
	router.OnObservation = telemetry.WithObservation(monitor.WithObservation(streamEngine.OnObservation))
	router.OnVerdict = telemetry.WithVerdict(monitor.WithVerdict(scorecard.OnVerdict))
	router.OnAnomaly = telemetry.WithAnomaly(monitor.WithAnomaly(middleware.NoopAnomaly))

	// Feed labeled observations from inside the dispatch loop
	feed := func() error {
		observation, truth, err := generator.GetNext()
		if err != nil {
			return err
		}
		scorecard.RecordTruth(truth)
		return router.Post(bus.ObservationEvent, observation)
	}

	if err := <-router.ExecLoop(ctx, feed); err != nil {
		if !errors.Is(err, synthetic.ErrEof) && !errors.Is(err, context.Canceled) {
			logger.Error("error during run", zap.Error(err))
		}
	}

	scorecard.GenerateReport().Print(logger)
	router.Statistics().Print()
	telemetry.PrintStatistics()
}
