package common

import (
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility"
)

// Verdict is the detector output for one observation. Score is the modified
// z-score of the observation's residual, Baseline and Dispersion are the
// detector statistics after the observation was absorbed.
type Verdict struct {
	Anomaly    bool    `json:"anomaly"`
	Value      float64 `json:"value"`
	Score      float64 `json:"score"`
	Baseline   float64 `json:"baseline"`
	Dispersion float64 `json:"dispersion"`

	Source      string              `json:"src,omitempty"`
	Stream      string              `json:"stream,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
