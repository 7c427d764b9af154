package datasource

import (
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/bus"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

type ObservationSource interface {
	GetNext() (common.Observation, error)
}

// CreateObservationDispatcher adapts a source to a bus.Router ExecLoop
// callback: one observation pulled and posted per invocation.
func CreateObservationDispatcher(r *bus.Router, ds ObservationSource) func() error {
	return func() error {
		var observation common.Observation
		var err error

		if observation, err = ds.GetNext(); err != nil {
			return err
		}
		if err = r.Post(bus.ObservationEvent, observation); err != nil {
			return err
		}
		return nil
	}
}
