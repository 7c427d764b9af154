package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/bus"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/detector"
)

const componentName = "engine.detector"

// Engine feeds observations from the bus into a detector and publishes a
// verdict for every observation, plus a separate anomaly event for flagged
// ones so alert consumers do not have to filter the verdict stream.
//
// All scoring happens on the router dispatch goroutine, which is what
// serializes access to the detector state.
type Engine struct {
	logger   *zap.Logger
	router   *bus.Router
	detector *detector.StreamAnomalyDetector
}

func NewEngine(logger *zap.Logger, router *bus.Router, d *detector.StreamAnomalyDetector) *Engine {
	return &Engine{
		logger:   logger,
		router:   router,
		detector: d,
	}
}

func (e *Engine) OnObservation(_ context.Context, observation common.Observation) {
	anomaly, err := e.detector.Update(observation.Value)
	if err != nil {
		e.logger.Warn("observation rejected",
			zap.Error(err),
			zap.String("stream", observation.Stream),
			zap.Uint64("tid", observation.TraceID))
		return
	}

	baseline, _ := e.detector.Baseline()
	verdict := common.Verdict{
		Anomaly:     anomaly,
		Value:       observation.Value,
		Score:       e.detector.Score(),
		Baseline:    baseline,
		Dispersion:  e.detector.Dispersion(),
		Source:      componentName,
		Stream:      observation.Stream,
		ExecutionId: observation.ExecutionId,
		TraceID:     observation.TraceID,
		TimeStamp:   observation.TimeStamp,
	}

	if err := e.router.Post(bus.VerdictEvent, verdict); err != nil {
		e.logger.Warn("unable to post verdict", zap.Error(err))
	}
	if anomaly {
		if err := e.router.Post(bus.AnomalyEvent, verdict); err != nil {
			e.logger.Warn("unable to post anomaly", zap.Error(err))
		}
	}
}
