package detector

type Option func(*StreamAnomalyDetector)

// WithAlpha sets the EMA smoothing factor. Higher values track trend changes
// faster but are more sensitive to individual spikes.
func WithAlpha(alpha float64) Option {
	return func(d *StreamAnomalyDetector) {
		d.alpha = alpha
	}
}

// WithThreshold sets the modified z-score cutoff above which an observation
// is flagged.
func WithThreshold(threshold float64) Option {
	return func(d *StreamAnomalyDetector) {
		d.threshold = threshold
	}
}

// WithWindowSize sets the number of most recent residuals the dispersion
// estimate is computed over once that many have accumulated.
func WithWindowSize(windowSize int) Option {
	return func(d *StreamAnomalyDetector) {
		d.windowSize = windowSize
	}
}

// WithPreUpdateScoring scores each observation against the baseline as it was
// before the observation is absorbed into it. The default mixes the current
// observation into its own baseline first, which dampens sensitivity to
// single-point spikes.
func WithPreUpdateScoring() Option {
	return func(d *StreamAnomalyDetector) {
		d.preUpdate = true
	}
}
