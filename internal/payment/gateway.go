package payment

import (
	"context"
	"fmt"
)

// Gateway creates a payment intent for an amount in major currency units and
// returns the processor's client secret. Implementations convert to the
// processor's minor-unit representation before the outbound call.
type Gateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (clientSecret string, err error)
}

// IntentError is a failed intent creation. Message is safe to show the user.
type IntentError struct {
	Message string
	Cause   error
}

func (e *IntentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payment: create intent: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("payment: create intent: %s", e.Message)
}

func (e *IntentError) Unwrap() error { return e.Cause }

// MinorUnits converts a major-unit amount to the processor's integer minor
// units, rounding to the nearest unit for two-decimal currencies.
func MinorUnits(amount float64) int64 {
	if amount < 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}
