package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
	"FinSight/internal/services/risk"
	applogger "FinSight/pkg/logger"
)

type stubSink struct {
	mu       sync.Mutex
	records  []string
	err      error
	recorded chan struct{}
}

func newStubSink() *stubSink {
	return &stubSink{recorded: make(chan struct{}, 16)}
}

func (s *stubSink) Record(_ context.Context, userID string, _ *models.RiskAssessment) error {
	s.mu.Lock()
	s.records = append(s.records, userID)
	s.mu.Unlock()
	s.recorded <- struct{}{}
	return s.err
}

func (s *stubSink) Close() error { return nil }

type stubAlerts struct {
	mu        sync.Mutex
	alerts    []*models.FraudAlert
	published chan struct{}
}

func newStubAlerts() *stubAlerts {
	return &stubAlerts{published: make(chan struct{}, 16)}
}

func (s *stubAlerts) Publish(_ context.Context, a *models.FraudAlert) error {
	s.mu.Lock()
	s.alerts = append(s.alerts, a)
	s.mu.Unlock()
	s.published <- struct{}{}
	return nil
}

func (s *stubAlerts) Close() error { return nil }

type stubMetrics struct {
	mu          sync.Mutex
	assessments []string
	forecasts   []string
	errs        []string
}

func (m *stubMetrics) RecordAssessment(decision string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments = append(m.assessments, decision)
}

func (m *stubMetrics) RecordForecast(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forecasts = append(m.forecasts, method)
}

func (m *stubMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, kind)
}

func (m *stubMetrics) RecordLatency(string, float64) {}

func await(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async write")
	}
}

func scoreTx(amount float64, createdAt string) models.Transaction {
	return models.Transaction{Amount: models.Amount(amount), CreatedAt: createdAt}
}

func normalHistory(n int) []models.Transaction {
	history := make([]models.Transaction, n)
	for i := range history {
		amount := 50.0
		if i%2 == 1 {
			amount = 52.0
		}
		history[i] = scoreTx(amount, "2024-06-01T10:00:00Z")
	}
	return history
}

func TestScoreNormalTransaction(t *testing.T) {
	sink := newStubSink()
	metrics := &stubMetrics{}
	uc := NewScoreTransactionUseCase(
		risk.NewEngine(nil, nil), sink, newStubAlerts(), metrics, applogger.Nop(),
	)

	resp := uc.Score(context.Background(), &models.RiskScoreRequest{
		UserID:      "u1",
		Transaction: scoreTx(51, "2024-06-10T12:00:00Z"),
		UserHistory: normalHistory(5),
	})

	require.True(t, resp.Success)
	assert.False(t, resp.IsFraud)

	await(t, sink.recorded)
	sink.mu.Lock()
	assert.Equal(t, []string{"u1"}, sink.records)
	sink.mu.Unlock()

	metrics.mu.Lock()
	assert.Equal(t, []string{"ok"}, metrics.assessments)
	metrics.mu.Unlock()
}

// Large off-hours transaction against a long low-value history trips enough
// rules to cross the fraud threshold and publish an alert.
func TestScoreFraudPublishesAlert(t *testing.T) {
	sink := newStubSink()
	alerts := newStubAlerts()
	metrics := &stubMetrics{}
	uc := NewScoreTransactionUseCase(
		risk.NewEngine(nil, nil), sink, alerts, metrics, applogger.Nop(),
	)

	resp := uc.Score(context.Background(), &models.RiskScoreRequest{
		UserID:      "u2",
		Transaction: scoreTx(6000, "2024-06-10T03:00:00Z"),
		UserHistory: normalHistory(15),
	})

	require.True(t, resp.Success)
	assert.True(t, resp.IsFraud)

	await(t, alerts.published)
	alerts.mu.Lock()
	require.Len(t, alerts.alerts, 1)
	assert.Equal(t, "u2", alerts.alerts[0].UserID)
	assert.Equal(t, models.Amount(6000), alerts.alerts[0].Transaction.Amount)
	assert.NotEmpty(t, alerts.alerts[0].Reason)
	alerts.mu.Unlock()

	metrics.mu.Lock()
	assert.Equal(t, []string{"fraud"}, metrics.assessments)
	metrics.mu.Unlock()
}

func TestScoreSinkFailureDoesNotAffectResponse(t *testing.T) {
	sink := newStubSink()
	sink.err = errors.New("clickhouse down")
	metrics := &stubMetrics{}
	uc := NewScoreTransactionUseCase(
		risk.NewEngine(nil, nil), sink, nil, metrics, applogger.Nop(),
	)

	resp := uc.Score(context.Background(), &models.RiskScoreRequest{
		UserID:      "u3",
		Transaction: scoreTx(51, "2024-06-10T12:00:00Z"),
		UserHistory: normalHistory(5),
	})

	require.True(t, resp.Success)
	await(t, sink.recorded)
}

func TestScorePanicReturnsFailureResponse(t *testing.T) {
	metrics := &stubMetrics{}
	uc := NewScoreTransactionUseCase(nil, nil, nil, metrics, applogger.Nop())

	resp := uc.Score(context.Background(), &models.RiskScoreRequest{
		Transaction: scoreTx(10, "2024-06-10T12:00:00Z"),
	})

	require.NotNil(t, resp)
	assert.False(t, resp.Success)
	assert.Equal(t, 0.5, resp.RiskScore)
	assert.False(t, resp.IsFraud)
	assert.Equal(t, "Error in analysis", resp.Reason)

	metrics.mu.Lock()
	assert.Contains(t, metrics.errs, "risk_panic")
	metrics.mu.Unlock()
}

func TestScoreWithoutSinkOrAlerts(t *testing.T) {
	uc := NewScoreTransactionUseCase(risk.NewEngine(nil, nil), nil, nil, nil, nil)

	resp := uc.Score(context.Background(), &models.RiskScoreRequest{
		Transaction: scoreTx(51, "2024-06-10T12:00:00Z"),
		UserHistory: normalHistory(5),
	})

	require.True(t, resp.Success)
}
