package models

// RiskScoreRequest is the risk-scoring envelope: the transaction under
// evaluation plus the account's transaction history, oldest first.
type RiskScoreRequest struct {
	UserID      string        `json:"userId,omitempty"`
	Transaction Transaction   `json:"transaction" validate:"required"`
	UserHistory []Transaction `json:"userHistory"`
}

// IncomeForecastRequest is the forecasting envelope: the raw transaction
// list the host retrieved for the account.
type IncomeForecastRequest struct {
	UserID       string        `json:"userId,omitempty"`
	Transactions []Transaction `json:"transactions"`
}
