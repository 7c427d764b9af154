package historical

import (
	"fmt"
	"sort"
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility"
)

const (
	invalidIndex                   = -1
	observationReaderComponentName = "datasource.historical.reader"
)

// ObservationReader replays the records of one recorded stream that fall into
// [from, to], in file order. Records are assumed sorted by timestamp.
type ObservationReader struct {
	source *Source[BinaryObservation]

	stream string
	from   int64
	to     int64
	idx    int64
}

func NewObservationReader(source *Source[BinaryObservation], stream string, from, to time.Time) *ObservationReader {
	return &ObservationReader{
		source: source,
		stream: stream,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
		idx:    invalidIndex,
	}
}

func (r *ObservationReader) GetNext() (common.Observation, error) {

	var observation common.Observation
	var record BinaryObservation

	if r.idx == invalidIndex {
		if err := r.lookupStartIndex(); err != nil {
			return observation, err
		}
	}

	if err := r.source.Read(r.idx, &record); err != nil {
		return observation, err
	}
	r.idx++

	if record.TimeStamp > r.to {
		return observation, ErrEof
	}

	record.ToObservation(&observation)
	observation.Source = observationReaderComponentName
	observation.Stream = r.stream
	observation.ExecutionId = utility.GetExecutionID()
	observation.TraceID = utility.CreateTraceID()

	return observation, nil
}

// lookupStartIndex binary-searches for the first record at or after the
// requested range start.
func (r *ObservationReader) lookupStartIndex() error {
	count := r.source.EntryCount()
	if count == 0 {
		return ErrEof
	}

	var searchErr error
	idx := int64(sort.Search(int(count), func(i int) bool {
		var record BinaryObservation
		if err := r.source.Read(int64(i), &record); err != nil {
			searchErr = err
			return true
		}
		return record.TimeStamp >= r.from
	}))
	if searchErr != nil {
		return fmt.Errorf("unable to locate range start: %w", searchErr)
	}
	if idx == count {
		return ErrEof
	}

	r.idx = idx
	return nil
}
