package models

import "time"

// FeatureVector is the fixed-shape set of scalar features derived from one
// transaction and its account history. Derived per call, never persisted.
type FeatureVector struct {
	Amount           float64
	Hour             int
	DayOfWeek        int
	AvgAmount        float64
	StdAmount        float64
	MaxAmount        float64
	MinAmount        float64
	AmountZScore     float64
	RecentTxCount    int
	HoursSinceLastTx float64
	AmountVsAvgRatio float64
	AmountVsMaxRatio float64
}

// MLVector returns the 7-element numeric vector the classifier artifact was
// trained on. Order is part of the artifact contract.
func (f FeatureVector) MLVector() []float64 {
	return []float64{
		f.Amount,
		float64(f.Hour),
		float64(f.DayOfWeek),
		f.AmountZScore,
		float64(f.RecentTxCount),
		f.HoursSinceLastTx,
		f.AmountVsAvgRatio,
	}
}

// RiskAssessment is the outcome of scoring a single transaction.
type RiskAssessment struct {
	RiskScore  float64
	IsFraud    bool
	Reasons    []string
	Confidence float64
	Features   FeatureVector
	Method     string
	ScoredAt   time.Time
}

// FeatureSnapshot is the observability subset of the feature vector included
// in responses.
type FeatureSnapshot struct {
	Amount         float64 `json:"amount"`
	AmountZScore   float64 `json:"amount_zscore"`
	RecentTxCount  int     `json:"recent_tx_count"`
	HoursSinceLast float64 `json:"hours_since_last"`
}

// RiskScoreResponse is the wire shape of a risk-scoring result. Success and
// failure share the struct; failure carries the conservative defaults.
type RiskScoreResponse struct {
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	RiskScore  float64          `json:"risk_score"`
	IsFraud    bool             `json:"is_fraud"`
	Reason     string           `json:"reason"`
	Confidence float64          `json:"confidence,omitempty"`
	Features   *FeatureSnapshot `json:"features,omitempty"`
}

// FraudAlert is published when a scored transaction crosses the fraud
// threshold. Mirrors the alert row the host application keeps.
type FraudAlert struct {
	UserID      string      `json:"userId,omitempty"`
	Transaction Transaction `json:"transaction"`
	RiskScore   float64     `json:"riskScore"`
	Reason      string      `json:"reason"`
	CreatedAt   time.Time   `json:"createdAt"`
}
