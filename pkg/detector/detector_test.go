package detector

import (
	"errors"
	"math"
	"testing"

	umath "github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility/math"
)

func mustDetector(t *testing.T, opts ...Option) *StreamAnomalyDetector {
	t.Helper()
	d, err := NewStreamAnomalyDetector(opts...)
	if err != nil {
		t.Fatalf("NewStreamAnomalyDetector failed: %v", err)
	}
	return d
}

func feed(t *testing.T, d *StreamAnomalyDetector, values []float64) []bool {
	t.Helper()
	verdicts := make([]bool, len(values))
	for i, v := range values {
		anomaly, err := d.Update(v)
		if err != nil {
			t.Fatalf("Update(%v) failed: %v", v, err)
		}
		verdicts[i] = anomaly
	}
	return verdicts
}

// Alternating small values, enough dispersion that a later spike has a scale
// to be judged against.
func noisyBaseline(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		if i%2 == 0 {
			values[i] = 0.5
		} else {
			values[i] = -0.5
		}
	}
	return values
}

func TestDetectorNew_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"alpha zero", []Option{WithAlpha(0)}},
		{"alpha negative", []Option{WithAlpha(-0.1)}},
		{"alpha above one", []Option{WithAlpha(1.5)}},
		{"alpha nan", []Option{WithAlpha(math.NaN())}},
		{"threshold zero", []Option{WithThreshold(0)}},
		{"threshold negative", []Option{WithThreshold(-3.5)}},
		{"threshold nan", []Option{WithThreshold(math.NaN())}},
		{"window zero", []Option{WithWindowSize(0)}},
		{"window negative", []Option{WithWindowSize(-30)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStreamAnomalyDetector(tt.opts...)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestDetectorNew_ValidBoundaries(t *testing.T) {
	d := mustDetector(t, WithAlpha(1), WithThreshold(0.001), WithWindowSize(1))
	if d == nil {
		t.Fatal("Expected detector")
	}
}

func TestDetectorUpdate_ColdStart(t *testing.T) {
	for _, value := range []float64{0, 42.5, -1e9} {
		d := mustDetector(t)

		anomaly, err := d.Update(value)
		if err != nil {
			t.Fatalf("Update(%v) failed: %v", value, err)
		}
		if anomaly {
			t.Errorf("First observation %v flagged", value)
		}

		baseline, ok := d.Baseline()
		if !ok || baseline != value {
			t.Errorf("Baseline() = %v, %v, want %v, true", baseline, ok, value)
		}
		if d.Dispersion() != 0 {
			t.Errorf("Dispersion() = %v, want 0", d.Dispersion())
		}
		if d.Count() != 1 {
			t.Errorf("Count() = %d, want 1", d.Count())
		}
	}
}

func TestDetectorUpdate_BaselineUnsetBeforeFirstObservation(t *testing.T) {
	d := mustDetector(t)

	if _, ok := d.Baseline(); ok {
		t.Error("Expected baseline to be unset before first observation")
	}
}

func TestDetectorUpdate_RejectsNonFinite(t *testing.T) {
	d := mustDetector(t)
	feed(t, d, noisyBaseline(10))

	baseline, _ := d.Baseline()
	dispersion := d.Dispersion()
	count := d.Count()

	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		anomaly, err := d.Update(value)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Update(%v): expected ErrInvalidInput, got %v", value, err)
		}
		if anomaly {
			t.Errorf("Update(%v) returned a verdict", value)
		}
	}

	// Rejected inputs must not have touched the state.
	gotBaseline, _ := d.Baseline()
	if gotBaseline != baseline || d.Dispersion() != dispersion || d.Count() != count {
		t.Errorf("State changed after rejected input: baseline %v->%v, dispersion %v->%v, count %d->%d",
			baseline, gotBaseline, dispersion, d.Dispersion(), count, d.Count())
	}

	// And the verdict stream continues as if they never happened.
	twin := mustDetector(t)
	feed(t, twin, noisyBaseline(10))
	wantVerdicts := feed(t, twin, []float64{100})
	gotVerdicts := feed(t, d, []float64{100})
	if gotVerdicts[0] != wantVerdicts[0] {
		t.Errorf("Verdict after rejected inputs = %v, want %v", gotVerdicts[0], wantVerdicts[0])
	}
}

func TestDetectorUpdate_ZeroDispersionGuard(t *testing.T) {
	d := mustDetector(t)

	for i := 0; i < 40; i++ {
		anomaly, err := d.Update(10.0)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if anomaly {
			t.Errorf("Constant stream flagged at observation %d", i)
		}
	}

	if d.Dispersion() != 0 {
		t.Errorf("Dispersion() = %v, want 0", d.Dispersion())
	}
}

func TestDetectorUpdate_SingleSpike(t *testing.T) {
	d := mustDetector(t)

	verdicts := feed(t, d, noisyBaseline(40))
	for i, v := range verdicts {
		if v {
			t.Errorf("Baseline observation %d flagged", i)
		}
	}

	anomaly, err := d.Update(100.0)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !anomaly {
		t.Errorf("Spike not flagged, score %v, dispersion %v", d.Score(), d.Dispersion())
	}
}

func TestDetectorUpdate_NegativeSpike(t *testing.T) {
	d := mustDetector(t)
	feed(t, d, noisyBaseline(40))

	anomaly, err := d.Update(-100.0)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !anomaly {
		t.Errorf("Negative spike not flagged, score %v", d.Score())
	}
}

func TestDetectorUpdate_ThresholdMonotonicity(t *testing.T) {
	values := noisyBaseline(50)
	values[20] = 2.5 // moderate deviation
	values[45] = 60  // large deviation

	strict := mustDetector(t, WithThreshold(3.5))
	loose := mustDetector(t, WithThreshold(1.0))

	strictVerdicts := feed(t, strict, values)
	looseVerdicts := feed(t, loose, values)

	strictCount, looseCount := 0, 0
	for i := range values {
		if strictVerdicts[i] {
			strictCount++
			if !looseVerdicts[i] {
				t.Errorf("Observation %d flagged at threshold 3.5 but not at 1.0", i)
			}
		}
		if looseVerdicts[i] {
			looseCount++
		}
	}

	if looseCount < strictCount {
		t.Errorf("Lower threshold flagged %d < %d", looseCount, strictCount)
	}
	if strictCount == 0 {
		t.Error("Expected the large deviation to be flagged at threshold 3.5")
	}
}

// The dispersion estimate runs over the whole history until DefaultWindowSize
// residuals exist and over the trailing window from then on. The two differ
// observably from the 31st residual onwards.
func TestDetectorUpdate_WindowTransition(t *testing.T) {
	d := mustDetector(t)

	var (
		ema       float64
		primed    bool
		residuals []float64
	)
	absorb := func(value float64) {
		if !primed {
			primed = true
			ema = value
			residuals = append(residuals, 0)
			return
		}
		ema = DefaultAlpha*value + (1-DefaultAlpha)*ema
		residuals = append(residuals, value-ema)
	}

	for i := 0; i < 35; i++ {
		value := float64(i * i)
		if _, err := d.Update(value); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		absorb(value)

		window := residuals
		if len(residuals) > DefaultWindowSize {
			window = residuals[len(residuals)-DefaultWindowSize:]
		}
		want := umath.MedianAbsoluteDeviation(window)

		if got := d.Dispersion(); got != want {
			t.Fatalf("Dispersion() after %d observations = %v, want %v", i+1, got, want)
		}

		if len(residuals) > DefaultWindowSize {
			full := umath.MedianAbsoluteDeviation(residuals)
			if full == want {
				t.Fatalf("Test data does not distinguish window from full history at observation %d", i+1)
			}
			if d.Dispersion() == full {
				t.Fatalf("Dispersion still tracks full history at observation %d", i+1)
			}
		}
	}
}

func TestDetectorUpdate_Determinism(t *testing.T) {
	values := noisyBaseline(100)
	values[33] = 42
	values[77] = -42

	a := mustDetector(t)
	b := mustDetector(t)

	verdictsA := feed(t, a, values)
	verdictsB := feed(t, b, values)

	for i := range values {
		if verdictsA[i] != verdictsB[i] {
			t.Errorf("Verdicts diverge at observation %d", i)
		}
	}
	if a.Score() != b.Score() || a.Dispersion() != b.Dispersion() {
		t.Error("Final statistics diverge between identical detectors")
	}
}

func TestDetectorUpdate_NoLookAhead(t *testing.T) {
	prefix := noisyBaseline(40)
	prefix[25] = 30

	suffixA := []float64{1, 2, 3, 4, 5}
	suffixB := []float64{500, -500, 0, 0, 0}

	a := mustDetector(t)
	b := mustDetector(t)

	verdictsA := feed(t, a, append(append([]float64{}, prefix...), suffixA...))
	verdictsB := feed(t, b, append(append([]float64{}, prefix...), suffixB...))

	for i := range prefix {
		if verdictsA[i] != verdictsB[i] {
			t.Errorf("Verdict for observation %d depends on later observations", i)
		}
	}
}

// Scoring against the pre-update baseline scales every residual by
// 1/(1-alpha) relative to the default, and MAD scales with it, so the
// modified z-scores and verdicts coincide while the raw dispersion differs.
func TestDetectorUpdate_PreUpdateScoring(t *testing.T) {
	values := noisyBaseline(40)
	values[35] = 25

	std := mustDetector(t)
	pre := mustDetector(t, WithPreUpdateScoring())

	stdVerdicts := feed(t, std, values)
	preVerdicts := feed(t, pre, values)

	for i := range values {
		if stdVerdicts[i] != preVerdicts[i] {
			t.Errorf("Verdicts diverge at observation %d", i)
		}
	}

	wantRatio := 1 / (1 - DefaultAlpha)
	gotRatio := pre.Dispersion() / std.Dispersion()
	if math.Abs(gotRatio-wantRatio) > 1e-9 {
		t.Errorf("Dispersion ratio = %v, want %v", gotRatio, wantRatio)
	}
}

func TestDetectorUpdate_WindowSizeOne(t *testing.T) {
	d := mustDetector(t, WithWindowSize(1))

	// A single-element window has MAD 0 on every call, nothing can ever be
	// flagged.
	for _, v := range []float64{0, 1, -5, 1000} {
		anomaly, err := d.Update(v)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if anomaly {
			t.Errorf("Update(%v) flagged with window size 1", v)
		}
	}
}

func BenchmarkDetectorUpdate(b *testing.B) {
	d, err := NewStreamAnomalyDetector()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.Update(float64(i % 17))
	}
}

func BenchmarkDetectorUpdate_LargeWindow(b *testing.B) {
	d, err := NewStreamAnomalyDetector(WithWindowSize(500))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.Update(float64(i % 17))
	}
}
