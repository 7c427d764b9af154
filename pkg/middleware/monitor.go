package middleware

import (
	"context"
	"log/slog"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/bus"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

type MonitorFlags uint8

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorObservations
	MonitorVerdicts
	MonitorAnomalies
)

// Monitor logs events passing through the wrapped handlers, gated by flags.
type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithObservation(handler bus.ObservationEventHandler) bus.ObservationEventHandler {
	return func(ctx context.Context, observation common.Observation) {
		if m.flags&MonitorObservations != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "observation", observation)
		}
		handler(ctx, observation)
	}
}

func (m *Monitor) WithVerdict(handler bus.VerdictEventHandler) bus.VerdictEventHandler {
	return func(ctx context.Context, verdict common.Verdict) {
		if m.flags&MonitorVerdicts != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "verdict", verdict)
		}
		handler(ctx, verdict)
	}
}

func (m *Monitor) WithAnomaly(handler bus.AnomalyEventHandler) bus.AnomalyEventHandler {
	return func(ctx context.Context, verdict common.Verdict) {
		if m.flags&MonitorAnomalies != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "anomaly", verdict)
		}
		handler(ctx, verdict)
	}
}
