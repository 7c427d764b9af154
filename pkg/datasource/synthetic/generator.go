package synthetic

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility"
)

const (
	signalGeneratorComponentName = "datasource.synthetic.generator"
)

var ErrEof = errors.New("EOF")

// SignalGenerator produces a labeled synthetic stream: a slow seasonal sine
// plus a faster regular sine plus gaussian noise, with rare injected
// anomalies of magnitude well outside the signal envelope. Determinism is the
// caller's to control through the supplied rng.
type SignalGenerator struct {
	stream string
	rng    *rand.Rand

	startTime      time.Time
	sampleInterval time.Duration
	steps          int64
	t              int64

	seasonalAmplitude float64
	seasonalFrequency float64
	regularAmplitude  float64
	regularFrequency  float64
	noiseStdDev       float64

	anomalyRate         float64
	anomalyMinMagnitude float64
	anomalyMaxMagnitude float64

	lastTime time.Time
}

func NewSignalGenerator(
	stream string,
	rng *rand.Rand,
	startTime time.Time,
	sampleInterval time.Duration,
	steps int64) *SignalGenerator {

	return &SignalGenerator{
		stream: stream,
		rng:    rng,

		startTime:      startTime,
		sampleInterval: sampleInterval,
		steps:          steps,

		seasonalAmplitude: 10,
		seasonalFrequency: 0.01,
		regularAmplitude:  1,
		regularFrequency:  0.1,
		noiseStdDev:       0.5,

		anomalyRate:         0.02,
		anomalyMinMagnitude: 5,
		anomalyMaxMagnitude: 20,

		lastTime: startTime,
	}
}

func (g *SignalGenerator) SetSignalShape(seasonalAmplitude, seasonalFrequency, regularAmplitude, regularFrequency float64) {
	g.seasonalAmplitude = seasonalAmplitude
	g.seasonalFrequency = seasonalFrequency
	g.regularAmplitude = regularAmplitude
	g.regularFrequency = regularFrequency
}

func (g *SignalGenerator) SetNoise(stdDev float64) {
	g.noiseStdDev = stdDev
}

func (g *SignalGenerator) SetAnomalyInjection(rate, minMagnitude, maxMagnitude float64) {
	g.anomalyRate = rate
	g.anomalyMinMagnitude = minMagnitude
	g.anomalyMaxMagnitude = maxMagnitude
}

// GetNext returns the next observation and its ground-truth label.
func (g *SignalGenerator) GetNext() (common.Observation, bool, error) {
	var observation common.Observation

	if g.t >= g.steps {
		return observation, false, ErrEof
	}

	t := float64(g.t)
	value := g.seasonalAmplitude*math.Sin(g.seasonalFrequency*t) +
		g.regularAmplitude*math.Sin(g.regularFrequency*t) +
		g.rng.NormFloat64()*g.noiseStdDev

	injected := false
	if g.rng.Float64() < g.anomalyRate {
		magnitude := -g.anomalyMaxMagnitude + g.rng.Float64()*2*g.anomalyMaxMagnitude
		if math.Abs(magnitude) < g.anomalyMinMagnitude {
			// Keep injected anomalies outside the noise band
			magnitude = math.Copysign(g.anomalyMinMagnitude, magnitude)
		}
		value += magnitude
		injected = true
	}

	g.lastTime = g.lastTime.Add(g.sampleInterval)
	g.t++

	observation.Value = value
	observation.Source = signalGeneratorComponentName
	observation.Stream = g.stream
	observation.ExecutionId = utility.GetExecutionID()
	observation.TraceID = utility.CreateTraceID()
	observation.TimeStamp = g.lastTime

	return observation, injected, nil
}
