package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentGateway is the boundary where a real payment provider would be
// substituted without changing the pipeline's contract.
type PaymentGateway interface {
	// Charge attempts to take payment. A declined payment is a successful
	// call with Approved=false; an error means the attempt never completed
	// (cancellation, transport failure).
	Charge(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
}

// PaymentRequest describes one charge attempt.
type PaymentRequest struct {
	Reference  string  `json:"reference"`
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
}

// PaymentResult is the outcome of a charge attempt.
type PaymentResult struct {
	Approved      bool      `json:"approved"`
	TransactionID string    `json:"transactionId,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	ProcessedAt   time.Time `json:"processedAt"`
}

// simulatedGateway implements PaymentGateway with a fixed delay standing in
// for provider latency, and an optional failure rate for exercising the
// decline path.
type simulatedGateway struct {
	delay       time.Duration
	failureRate float64
	logger      zerolog.Logger
}

// NewSimulatedGateway creates the simulated payment gateway.
func NewSimulatedGateway(delay time.Duration, failureRate float64, logger zerolog.Logger) PaymentGateway {
	return &simulatedGateway{
		delay:       delay,
		failureRate: failureRate,
		logger:      logger.With().Str("component", "payment-gateway").Logger(),
	}
}

// Charge waits out the simulated provider delay, honouring cancellation,
// then approves or declines.
func (g *simulatedGateway) Charge(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	g.logger.Debug().
		Str("reference", req.Reference).
		Float64("amount", req.Amount).
		Str("method", req.Method).
		Msg("processing payment")

	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		g.logger.Warn().Str("reference", req.Reference).Msg("payment abandoned before completion")
		return nil, fmt.Errorf("payment cancelled: %w", ctx.Err())
	case <-timer.C:
	}

	if rand.Float64() < g.failureRate {
		g.logger.Info().Str("reference", req.Reference).Msg("payment declined")
		return &PaymentResult{
			Approved:      false,
			FailureReason: "card declined by issuer",
			ProcessedAt:   time.Now(),
		}, nil
	}

	result := &PaymentResult{
		Approved:      true,
		TransactionID: "TXN-" + uuid.NewString()[:8],
		ProcessedAt:   time.Now(),
	}

	g.logger.Info().
		Str("reference", req.Reference).
		Str("transaction_id", result.TransactionID).
		Float64("amount", req.Amount).
		Msg("payment approved")

	return result, nil
}
