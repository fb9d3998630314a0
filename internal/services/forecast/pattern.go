package forecast

import (
	"math"

	"FinSight/internal/domain/models"
)

const minPatternPoints = 5

// DetectPattern classifies the trend of a daily income series by comparing
// the mean of the last five points against the first five.
func DetectPattern(series []models.DailyIncome) string {
	if len(series) < minPatternPoints {
		return models.PatternInsufficientData
	}

	recent := meanAmounts(series[len(series)-5:])
	older := meanAmounts(series[:5])

	if older == 0 {
		return models.PatternIrregular
	}

	change := (recent - older) / older
	switch {
	case math.Abs(change) < 0.1:
		return models.PatternStable
	case change > 0.1:
		return models.PatternIncreasing
	case change < -0.1:
		return models.PatternDecreasing
	default:
		return models.PatternStable
	}
}

// EstimateConfidence sizes forecast reliability from the series' coefficient
// of variation, its length, and the detected pattern. Result is an integer
// in [40, 95].
func EstimateConfidence(series []models.DailyIncome, pattern string) int {
	if len(series) < minPatternPoints {
		return 40
	}

	m := meanAmounts(series)
	if m == 0 {
		return 50
	}
	cv := sampleStdAmounts(series, m) / m

	var base int
	switch {
	case cv < 0.3:
		base = 85
	case cv < 0.5:
		base = 75
	case cv < 0.8:
		base = 65
	default:
		base = 55
	}

	bonus := len(series)
	if bonus > 10 {
		bonus = 10
	}

	confidence := base + bonus + patternAdjustment(pattern)
	if confidence < 40 {
		confidence = 40
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

func patternAdjustment(pattern string) int {
	switch pattern {
	case models.PatternStable:
		return 5
	case models.PatternIrregular:
		return -10
	case models.PatternInsufficientData:
		return -20
	default:
		return 0
	}
}

func meanAmounts(series []models.DailyIncome) float64 {
	sum := 0.0
	for _, p := range series {
		sum += p.Amount
	}
	return sum / float64(len(series))
}

// sampleStdAmounts is the sample (n-1) standard deviation around mean m.
func sampleStdAmounts(series []models.DailyIncome, m float64) float64 {
	if len(series) < 2 {
		return 0
	}
	sum2 := 0.0
	for _, p := range series {
		d := p.Amount - m
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(len(series)-1))
}
