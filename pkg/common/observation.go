package common

import (
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility"
)

// Observation is a single scalar sample of a stream. Samples arrive in strict
// chronological order, one per logical time step.
type Observation struct {
	Value float64 `json:"value"`

	Source      string              `json:"src,omitempty"`
	Stream      string              `json:"stream,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
