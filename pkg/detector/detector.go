package detector

import (
	"errors"
	"fmt"
	"math"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility/circular"
	umath "github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility/math"
)

const (
	DefaultAlpha      = 0.1
	DefaultThreshold  = 3.5
	DefaultWindowSize = 30

	// Rescales MAD to be comparable with a standard-deviation z-score under
	// a normal distribution assumption.
	madScale = 0.6745
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidInput     = errors.New("invalid input")
)

// StreamAnomalyDetector is an online estimator over a scalar stream. It keeps
// an exponential moving average as the adaptive baseline and a median
// absolute deviation over the most recent residuals as a robust dispersion
// estimate, and flags observations whose modified z-score exceeds the
// threshold.
//
// Update must complete before the next call is made; concurrent producers
// have to serialize, or use one detector per stream. There is no reset, a
// fresh baseline means a fresh instance.
type StreamAnomalyDetector struct {
	alpha      float64
	threshold  float64
	windowSize int
	preUpdate  bool

	primed bool
	ema    float64
	mad    float64
	score  float64
	count  uint64

	// The trailing residual window. While count < windowSize this holds every
	// residual seen so far, afterwards exactly the last windowSize of them,
	// which keeps memory bounded on long-lived streams.
	residuals *circular.Buffer[float64]

	scratch    []float64
	deviations []float64
}

func NewStreamAnomalyDetector(opts ...Option) (*StreamAnomalyDetector, error) {
	d := &StreamAnomalyDetector{
		alpha:      DefaultAlpha,
		threshold:  DefaultThreshold,
		windowSize: DefaultWindowSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	if !(d.alpha > 0 && d.alpha <= 1) {
		return nil, fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidParameter, d.alpha)
	}
	if !(d.threshold > 0) {
		return nil, fmt.Errorf("%w: threshold %v not positive", ErrInvalidParameter, d.threshold)
	}
	if d.windowSize < 1 {
		return nil, fmt.Errorf("%w: window size %d not positive", ErrInvalidParameter, d.windowSize)
	}

	d.residuals = circular.NewBuffer[float64](uint(d.windowSize))
	d.scratch = make([]float64, 0, d.windowSize)
	d.deviations = make([]float64, 0, d.windowSize)
	return d, nil
}

// Update absorbs one observation and reports whether it is anomalous. The
// very first observation seeds the baseline and can never be flagged.
// Non-finite values are rejected with ErrInvalidInput and leave the detector
// state untouched.
func (d *StreamAnomalyDetector) Update(value float64) (bool, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false, fmt.Errorf("%w: non-finite value %v", ErrInvalidInput, value)
	}

	if !d.primed {
		d.primed = true
		d.ema = value
		d.mad = 0
		d.score = 0
		d.residuals.Push(0)
		d.count++
		return false, nil
	}

	ema := d.alpha*value + (1-d.alpha)*d.ema

	residual := value - ema
	if d.preUpdate {
		residual = value - d.ema
	}

	d.ema = ema
	d.residuals.Push(residual)
	d.count++
	d.mad = d.windowMad()

	if d.mad == 0 {
		// Residuals have been constant, no scale to judge against.
		d.score = 0
		return false, nil
	}

	d.score = madScale * residual / d.mad
	return math.Abs(d.score) > d.threshold, nil
}

// Baseline returns the current adaptive baseline. The boolean is false before
// the first observation.
func (d *StreamAnomalyDetector) Baseline() (float64, bool) {
	return d.ema, d.primed
}

// Dispersion returns the current MAD estimate. Always >= 0.
func (d *StreamAnomalyDetector) Dispersion() float64 {
	return d.mad
}

// Score returns the modified z-score of the last absorbed observation.
func (d *StreamAnomalyDetector) Score() float64 {
	return d.score
}

// Count returns the number of observations absorbed so far.
func (d *StreamAnomalyDetector) Count() uint64 {
	return d.count
}

func (d *StreamAnomalyDetector) windowMad() float64 {
	d.scratch = d.residuals.CopyFifo(d.scratch[:0])
	median := umath.MedianInPlace(d.scratch)

	d.deviations = d.deviations[:0]
	for i := uint(0); i < d.residuals.Size(); i++ {
		d.deviations = append(d.deviations, math.Abs(d.residuals.Get(i)-median))
	}
	return umath.MedianInPlace(d.deviations)
}
