package middleware

import (
	"context"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

//goland:noinspection ALL
var (
	NoopObservation = func(context.Context, common.Observation) {}
	NoopVerdict     = func(context.Context, common.Verdict) {}
	NoopAnomaly     = func(context.Context, common.Verdict) {}
)
