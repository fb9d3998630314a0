package risk

import "FinSight/internal/domain/models"

// rule is one deterministic heuristic: a predicate over the feature vector,
// a fixed weight, and the reason reported when it fires. Rules are
// independent and not mutually exclusive.
type rule struct {
	weight float64
	reason string
	fires  func(fv models.FeatureVector) bool
}

var rules = []rule{
	{0.30, "Amount is significantly higher than usual", func(fv models.FeatureVector) bool {
		return fv.AmountZScore > 3
	}},
	{0.25, "Amount is 5x higher than average", func(fv models.FeatureVector) bool {
		return fv.AmountVsAvgRatio > 5
	}},
	{0.20, "High transaction frequency detected", func(fv models.FeatureVector) bool {
		return fv.RecentTxCount > 10
	}},
	{0.15, "Multiple transactions in very short time", func(fv models.FeatureVector) bool {
		return fv.HoursSinceLastTx < 0.5
	}},
	{0.10, "Transaction at unusual hour", func(fv models.FeatureVector) bool {
		return fv.Hour < 5 || fv.Hour > 23
	}},
	{0.20, "Very large transaction amount", func(fv models.FeatureVector) bool {
		return fv.Amount > 5000
	}},
	{0.30, "First transaction with large amount", func(fv models.FeatureVector) bool {
		return fv.RecentTxCount == 0 && fv.Amount > 1000
	}},
}

// normalReason is reported when no rule fires.
const normalReason = "Normal transaction pattern"

// EvaluateRules runs every heuristic against the feature vector and returns
// the accumulated score clamped to [0, 1] plus the reasons in trigger order.
// The reason list is never empty.
func EvaluateRules(fv models.FeatureVector) (float64, []string) {
	score := 0.0
	var reasons []string
	for _, r := range rules {
		if r.fires(fv) {
			score += r.weight
			reasons = append(reasons, r.reason)
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	if len(reasons) == 0 {
		reasons = []string{normalReason}
	}
	return score, reasons
}
