package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/bus"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

// Telemetry counts events flowing through the wrapped handlers.
type Telemetry struct {
	logger *zap.Logger

	observationEventCounter int64
	verdictEventCounter     int64
	anomalyEventCounter     int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithObservation(handler bus.ObservationEventHandler) bus.ObservationEventHandler {
	return func(ctx context.Context, observation common.Observation) {
		t.observationEventCounter++
		handler(ctx, observation)
	}
}

func (t *Telemetry) WithVerdict(handler bus.VerdictEventHandler) bus.VerdictEventHandler {
	return func(ctx context.Context, verdict common.Verdict) {
		t.verdictEventCounter++
		handler(ctx, verdict)
	}
}

func (t *Telemetry) WithAnomaly(handler bus.AnomalyEventHandler) bus.AnomalyEventHandler {
	return func(ctx context.Context, verdict common.Verdict) {
		t.anomalyEventCounter++
		handler(ctx, verdict)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("event statistics",
		zap.Int64("observation_events", t.observationEventCounter),
		zap.Int64("verdict_events", t.verdictEventCounter),
		zap.Int64("anomaly_events", t.anomalyEventCounter))
}
