package models

import (
	"encoding/json"
	"strconv"
	"time"

	"FinSight/pkg/util"
)

// Amount is a signed decimal transaction amount. Positive values are
// incoming funds. Hosts backed by SQL decimal columns serialize amounts as
// strings, so both numeric and string JSON forms are accepted.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Transaction is a single host-application transaction. Only Amount and
// CreatedAt participate in scoring and forecasting; the remaining fields are
// carried through for audit output.
type Transaction struct {
	ID          string `json:"id,omitempty"`
	Amount      Amount `json:"amount"`
	CreatedAt   string `json:"createdAt"`
	Type        string `json:"type,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// Time parses the transaction timestamp. Returns (t, false) when the
// timestamp is missing or unparsable; callers decide the skip-or-default
// policy.
func (t *Transaction) Time() (time.Time, bool) {
	return util.ParseTimestamp(t.CreatedAt)
}

// Incoming reports whether the transaction represents incoming funds.
func (t *Transaction) Incoming() bool {
	return t.Amount > 0
}
