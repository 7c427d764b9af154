package synthetic

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

func newTestGenerator(seed int64, steps int64) *SignalGenerator {
	return NewSignalGenerator(
		"test",
		rand.New(rand.NewSource(seed)),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Second,
		steps)
}

func TestSyntheticGenerator_Eof(t *testing.T) {
	g := newTestGenerator(1, 5)

	for i := 0; i < 5; i++ {
		if _, _, err := g.GetNext(); err != nil {
			t.Fatalf("GetNext() failed at step %d: %v", i, err)
		}
	}

	if _, _, err := g.GetNext(); !errors.Is(err, ErrEof) {
		t.Errorf("Expected ErrEof after %d steps, got %v", 5, err)
	}
}

func TestSyntheticGenerator_Deterministic(t *testing.T) {
	a := newTestGenerator(42, 200)
	b := newTestGenerator(42, 200)

	for i := 0; i < 200; i++ {
		obsA, labelA, errA := a.GetNext()
		obsB, labelB, errB := b.GetNext()

		if errA != nil || errB != nil {
			t.Fatalf("GetNext() failed at step %d: %v, %v", i, errA, errB)
		}
		if obsA.Value != obsB.Value || labelA != labelB {
			t.Fatalf("Diverged at step %d: %v/%v vs %v/%v", i, obsA.Value, labelA, obsB.Value, labelB)
		}
	}
}

func TestSyntheticGenerator_AnomalyMagnitude(t *testing.T) {
	g := newTestGenerator(7, 10000)
	// Noise off isolates the injected magnitude
	g.SetNoise(0)

	envelope := g.seasonalAmplitude + g.regularAmplitude
	anomalies := 0

	for i := int64(0); i < 10000; i++ {
		obs, injected, err := g.GetNext()
		if err != nil {
			t.Fatalf("GetNext() failed: %v", err)
		}

		clean := g.seasonalAmplitude*math.Sin(g.seasonalFrequency*float64(i)) +
			g.regularAmplitude*math.Sin(g.regularFrequency*float64(i))
		offset := math.Abs(obs.Value - clean)

		if injected {
			anomalies++
			if offset < g.anomalyMinMagnitude || offset > g.anomalyMaxMagnitude {
				t.Errorf("Injected magnitude %v at step %d outside [%v, %v]",
					offset, i, g.anomalyMinMagnitude, g.anomalyMaxMagnitude)
			}
		} else {
			if offset != 0 {
				t.Errorf("Unlabeled offset %v at step %d with noise disabled", offset, i)
			}
			if math.Abs(obs.Value) > envelope {
				t.Errorf("Clean value %v at step %d outside envelope %v", obs.Value, i, envelope)
			}
		}
	}

	// ~2% of 10000, generously bounded
	if anomalies < 100 || anomalies > 400 {
		t.Errorf("Injected %d anomalies, expected roughly 200", anomalies)
	}
}

func TestSyntheticGenerator_Timestamps(t *testing.T) {
	g := newTestGenerator(3, 10)

	prev := time.Time{}
	for i := 0; i < 10; i++ {
		obs, _, err := g.GetNext()
		if err != nil {
			t.Fatalf("GetNext() failed: %v", err)
		}
		if !obs.TimeStamp.After(prev) {
			t.Errorf("Timestamp %v at step %d not after %v", obs.TimeStamp, i, prev)
		}
		if obs.Stream != "test" || obs.Source != signalGeneratorComponentName {
			t.Errorf("Unexpected attribution: %q %q", obs.Stream, obs.Source)
		}
		prev = obs.TimeStamp
	}
}
