package bus

import (
	"context"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type ObservationEventHandler EventHandler[common.Observation]
type VerdictEventHandler EventHandler[common.Verdict]
type AnomalyEventHandler EventHandler[common.Verdict]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
