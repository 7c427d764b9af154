package historical

import (
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

// BinaryObservation is the on-disk record layout of a recorded stream:
// nanosecond timestamp followed by the sample value, little-endian, no
// padding.
type BinaryObservation struct {
	TimeStamp int64
	Value     float64
}

func (binaryObservation BinaryObservation) ToObservation(observation *common.Observation) {
	observation.TimeStamp = time.Unix(0, binaryObservation.TimeStamp)
	observation.Value = binaryObservation.Value
}
