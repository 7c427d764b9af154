package evaluation

import (
	"context"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility/fixed"
)

// Scorecard collects ground-truth labels and detector verdicts for one run.
// Labels and verdicts are aligned index-for-index; if one side is shorter the
// report only covers the overlapping prefix.
type Scorecard struct {
	truths      []bool
	predictions []bool
}

func NewScorecard() *Scorecard {
	return &Scorecard{}
}

// RecordTruth appends the ground-truth label of the next observation. The
// producing side calls this as it emits each value.
func (s *Scorecard) RecordTruth(anomaly bool) {
	s.truths = append(s.truths, anomaly)
}

// OnVerdict is the bus handler collecting predictions.
func (s *Scorecard) OnVerdict(_ context.Context, verdict common.Verdict) {
	s.predictions = append(s.predictions, verdict.Anomaly)
}

func (s *Scorecard) GenerateReport() Report {
	report := Report{}

	n := len(s.truths)
	if len(s.predictions) < n {
		n = len(s.predictions)
	}
	report.Samples = n

	for i := 0; i < n; i++ {
		truth, predicted := s.truths[i], s.predictions[i]
		if truth {
			report.TruthAnomalies++
		}
		if predicted {
			report.Flagged++
		}
		switch {
		case truth && predicted:
			report.TruePositives++
		case !truth && predicted:
			report.FalsePositives++
		case truth && !predicted:
			report.FalseNegatives++
		default:
			report.TrueNegatives++
		}
	}

	var precision, recall fixed.Point
	if report.TruePositives+report.FalsePositives > 0 {
		precision = fixed.FromInt(report.TruePositives, 0).
			DivInt(report.TruePositives + report.FalsePositives)
	}
	if report.TruePositives+report.FalseNegatives > 0 {
		recall = fixed.FromInt(report.TruePositives, 0).
			DivInt(report.TruePositives + report.FalseNegatives)
	}

	report.Precision = precision.MulInt64(100).Rescale(2)
	report.Recall = recall.MulInt64(100).Rescale(2)

	if !precision.Add(recall).IsZero() {
		f1 := precision.Mul(recall).MulInt64(2).Div(precision.Add(recall))
		report.F1 = f1.MulInt64(100).Rescale(2)
	} else {
		report.F1 = fixed.Zero.Rescale(2)
	}

	return report
}
