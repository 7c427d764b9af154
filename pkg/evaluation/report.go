package evaluation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/utility/fixed"
)

// Report summarizes detector verdicts against ground-truth labels.
// Precision, Recall and F1 are percentages rescaled to two decimal places;
// they are Zero when their denominator is empty.
type Report struct {
	Samples        int
	TruthAnomalies int
	Flagged        int

	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int

	Precision fixed.Point
	Recall    fixed.Point
	F1        fixed.Point
}

func (report Report) Print(logger *zap.Logger) {
	logger.Info("confusion matrix",
		zap.Int("samples", report.Samples),
		zap.Int("truth_anomalies", report.TruthAnomalies),
		zap.Int("flagged", report.Flagged),
		zap.Int("true_positives", report.TruePositives),
		zap.Int("false_positives", report.FalsePositives),
		zap.Int("false_negatives", report.FalseNegatives),
		zap.Int("true_negatives", report.TrueNegatives),
	)

	logger.Info("detection metrics",
		zap.String("precision", fmt.Sprintf("%s%%", report.Precision.String())),
		zap.String("recall", fmt.Sprintf("%s%%", report.Recall.String())),
		zap.String("f1_score", fmt.Sprintf("%s%%", report.F1.String())),
	)
}
