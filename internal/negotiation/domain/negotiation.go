package domain

import (
	"context"

	"github.com/haulware/carriergate/internal/money"
)

// MaxRounds bounds how many counter-offers a session may issue before offers
// above the ceiling are terminally rejected.
const MaxRounds = 3

// EvaluateRequest is one carrier offer against one load.
type EvaluateRequest struct {
	MCNumber string
	LoadID   string
	Offer    money.Amount
}

// Outcome is the verdict for one offer evaluation. Pointer fields are absent
// from the wire when the branch that produced the outcome does not set them.
type Outcome struct {
	Accepted     bool     `json:"accepted"`
	Price        *float64 `json:"price,omitempty"`
	CounterOffer *float64 `json:"counter_offer,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	Note         string   `json:"note,omitempty"`
	Round        int      `json:"round"`
	Listed       *float64 `json:"listed,omitempty"`
	Ceiling      *float64 `json:"ceiling,omitempty"`
}

type Service interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (Outcome, error)
}
