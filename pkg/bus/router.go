package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

type event struct {
	id   EventId
	data interface{}
}

// Router is a single-goroutine event loop. Producers Post events into a
// bounded queue; Exec or ExecLoop dispatches them to the assigned handlers in
// order. Dispatch order is the serialization boundary for detector state.
type Router struct {
	events chan event

	OnObservation ObservationEventHandler
	OnVerdict     VerdictEventHandler
	OnAnomaly     AnomalyEventHandler

	startTime     time.Time
	runTime       atomic.Int64
	postCount     atomic.Uint64
	postFails     atomic.Uint64
	dispatchCount atomic.Uint64
	dispatchFails atomic.Uint64
}

func NewRouter(eventCapacity int) *Router {
	return &Router{
		events: make(chan event, eventCapacity),
	}
}

func (r *Router) Post(id EventId, data interface{}) error {
	select {
	case r.events <- event{id, data}:
		r.postCount.Add(1)
		return nil
	default:
		r.postFails.Add(1)
		return errors.New("event capacity reached")
	}
}

// Exec dispatches queued events until the context is cancelled.
func (r *Router) Exec(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	r.reset()

	go func() {
		for {
			select {
			case <-ctx.Done():
				// Stop the clock before signalling completion, the receiver
				// may read Statistics right away.
				r.stopClock()
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					slog.Warn("dispatch failed", "error", err, "event", ev.id)
				}
			}
		}
	}()
	return done
}

// ExecLoop behaves like Exec but invokes doOnceCb whenever the queue is
// drained, which lets a data source feed the loop from the inside. The first
// error returned by doOnceCb ends the loop.
func (r *Router) ExecLoop(ctx context.Context, doOnceCb func() error) <-chan error {
	done := make(chan error, 1)
	r.reset()

	go func() {
		for {
			select {
			case <-ctx.Done():
				r.stopClock()
				done <- ctx.Err()
				return
			case ev := <-r.events:
				r.dispatchCount.Add(1)
				if err := r.dispatch(ctx, ev); err != nil {
					r.dispatchFails.Add(1)
					slog.Warn("dispatch failed", "error", err, "event", ev.id)
				}
			default:
				if err := doOnceCb(); err != nil {
					r.drain(ctx)
					r.stopClock()
					done <- err
					return
				}
			}
		}
	}()
	return done
}

func (r *Router) Statistics() Statistics {
	runTime := time.Duration(r.runTime.Load())
	if runTime == 0 {
		runTime = time.Since(r.startTime)
	}
	return Statistics{
		RunTime:       runTime,
		PostCount:     r.postCount.Load(),
		PostFails:     r.postFails.Load(),
		DispatchCount: r.dispatchCount.Load(),
		DispatchFails: r.dispatchFails.Load(),
		Throughput:    float64(r.postCount.Load()) / runTime.Seconds(),
	}
}

func (r *Router) reset() {
	r.startTime = time.Now()
	r.runTime.Store(0)
	r.postCount.Store(0)
	r.postFails.Store(0)
	r.dispatchCount.Store(0)
	r.dispatchFails.Store(0)
}

func (r *Router) stopClock() {
	r.runTime.Store(int64(time.Since(r.startTime)))
}

// drain flushes events still queued when the feed ends, so trailing verdicts
// are not lost.
func (r *Router) drain(ctx context.Context) {
	for {
		select {
		case ev := <-r.events:
			r.dispatchCount.Add(1)
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails.Add(1)
				slog.Warn("dispatch failed", "error", err, "event", ev.id)
			}
		default:
			return
		}
	}
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case ObservationEvent:
		obs, ok := ev.data.(common.Observation)
		if !ok {
			return errors.New("invalid type assertion for observation event")
		}
		if r.OnObservation != nil {
			r.OnObservation(ctx, obs)
		} else {
			slog.Debug("observation handler is nil")
		}
	case VerdictEvent:
		verdict, ok := ev.data.(common.Verdict)
		if !ok {
			return errors.New("invalid type assertion for verdict event")
		}
		if r.OnVerdict != nil {
			r.OnVerdict(ctx, verdict)
		} else {
			slog.Debug("verdict handler is nil")
		}
	case AnomalyEvent:
		verdict, ok := ev.data.(common.Verdict)
		if !ok {
			return errors.New("invalid type assertion for anomaly event")
		}
		if r.OnAnomaly != nil {
			r.OnAnomaly(ctx, verdict)
		} else {
			slog.Debug("anomaly handler is nil")
		}
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
	return nil
}
