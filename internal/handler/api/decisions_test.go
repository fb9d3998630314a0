package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/services/forecast"
	"FinSight/internal/services/risk"
	"FinSight/internal/usecase"
	xhttp "FinSight/pkg/http"
	applogger "FinSight/pkg/logger"
)

func newTestHandler() *DecisionsHandler {
	scorer := usecase.NewScoreTransactionUseCase(risk.NewEngine(nil, nil), nil, nil, nil, applogger.Nop())
	forecaster := usecase.NewForecastIncomeUseCase(forecast.NewEngine(nil, nil), nil, 0, nil, applogger.Nop())
	return NewDecisionsHandler(applogger.Nop(), scorer, forecaster)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	newTestHandler().RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestScoreRiskEndpoint(t *testing.T) {
	e := newTestEcho()
	body := `{
        "userId": "u1",
        "transaction": {"id": "t1", "amount": 1500, "createdAt": "2024-06-10T03:00:00Z"},
        "userHistory": []
    }`

	rec, envelope := doJSON(t, e, http.MethodPost, "/api/risk/score", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, http.StatusOK, envelope.Status)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var resp struct {
		Success   bool    `json:"success"`
		RiskScore float64 `json:"risk_score"`
		IsFraud   bool    `json:"is_fraud"`
		Reason    string  `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))

	assert.True(t, resp.Success)
	// First-large plus short-interval rules on an empty history give 0.45;
	// the unusual-hour rule may add 0.10 depending on the wall clock.
	assert.GreaterOrEqual(t, resp.RiskScore, 0.45)
	assert.LessOrEqual(t, resp.RiskScore, 0.55)
	assert.False(t, resp.IsFraud)
	assert.Contains(t, resp.Reason, "First transaction with large amount")
}

func TestScoreRiskValidation(t *testing.T) {
	e := newTestEcho()

	_, envelope := doJSON(t, e, http.MethodPost, "/api/risk/score", `{"userId": "u1"}`)
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
}

func TestForecastIncomeEndpoint(t *testing.T) {
	e := newTestEcho()
	body := `{
        "userId": "u1",
        "transactions": [
            {"amount": 100, "createdAt": "2024-06-01T09:00:00Z"},
            {"amount": 100, "createdAt": "2024-06-02T09:00:00Z"},
            {"amount": 100, "createdAt": "2024-06-03T09:00:00Z"}
        ]
    }`

	rec, envelope := doJSON(t, e, http.MethodPost, "/api/forecast/income", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, http.StatusOK, envelope.Status)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var resp struct {
		Success    bool    `json:"success"`
		Pattern    string  `json:"pattern"`
		Confidence int     `json:"confidence"`
		Next7Days  float64 `json:"next7Days"`
		Method     string  `json:"method"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "insufficient_data", resp.Pattern)
	assert.Equal(t, 50, resp.Confidence)
	assert.Equal(t, "simple_average", resp.Method)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestRiskStream(t *testing.T) {
	e := newTestEcho()
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/risk/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"userId":      "u1",
		"transaction": map[string]interface{}{"amount": 100, "createdAt": "2024-06-10T12:00:00Z"},
		"userHistory": []interface{}{},
	}))

	var resp struct {
		Success   bool    `json:"success"`
		RiskScore float64 `json:"risk_score"`
		Reason    string  `json:"reason"`
	}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.True(t, resp.Success)
	assert.Less(t, resp.RiskScore, 0.8)
}

func TestRiskStreamMalformedMessageKeepsSession(t *testing.T) {
	e := newTestEcho()
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/risk/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	var failure struct {
		Success   bool    `json:"success"`
		RiskScore float64 `json:"risk_score"`
		Reason    string  `json:"reason"`
	}
	require.NoError(t, conn.ReadJSON(&failure))
	assert.False(t, failure.Success)
	assert.Equal(t, 0.5, failure.RiskScore)
	assert.Equal(t, "Error in analysis", failure.Reason)

	// session still usable
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"transaction": map[string]interface{}{"amount": 10, "createdAt": "2024-06-10T12:00:00Z"},
	}))
	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.True(t, resp.Success)
}
