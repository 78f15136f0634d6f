package payment

import "context"

// CardDetails is raw card input captured by presentation code. It exists
// only for the duration of tokenization and is never stored.
type CardDetails struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
}

type BillingDetails struct {
	Email   string
	Name    string
	Street  string
	City    string
	Postal  string
	Country string
}

// Processor is the narrow surface the checkout orchestrator needs from a
// card-processing platform. Implementations must map every platform-specific
// outcome onto the closed IntentResult set; the orchestrator never inspects
// processor payloads beyond this shape.
//
//go:generate mockgen -source=api.go -package payment -destination processor_mock.go Processor
type Processor interface {
	// CreatePaymentMethod tokenizes raw card details and returns the token.
	CreatePaymentMethod(c context.Context, card CardDetails, billing BillingDetails) (string, error)

	// ConfirmPayment advances the payment intent identified by clientSecret.
	ConfirmPayment(c context.Context, clientSecret string) (IntentResult, error)

	// PresentAuthenticationChallenge runs the step-up (3-D Secure) leg for
	// the intent identified by clientSecret.
	PresentAuthenticationChallenge(c context.Context, clientSecret string) (IntentResult, error)
}
