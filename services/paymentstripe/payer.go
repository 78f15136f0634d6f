package paymentstripe

import (
	"context"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/paymentmethod"
)

//go:generate mockgen -source=payer.go -package paymentstripe -destination payer_mock.go Payer
type Payer interface {
	UseAPIKey(key string)
	CreatePaymentMethod(ctx context.Context, params stripe.PaymentMethodParams) (stripe.PaymentMethod, error)
	GetPaymentIntent(ctx context.Context, intentUID string) (stripe.PaymentIntent, error)
	ConfirmPaymentIntent(ctx context.Context, intentUID string, params stripe.PaymentIntentConfirmParams) (stripe.PaymentIntent, error)
}

type stripePayer struct{}

func NewPayer() Payer {
	return &stripePayer{}
}

func (p *stripePayer) UseAPIKey(apiKey string) {
	stripe.Key = apiKey
}

func (p *stripePayer) CreatePaymentMethod(ctx context.Context, params stripe.PaymentMethodParams) (stripe.PaymentMethod, error) {
	method, err := paymentmethod.New(&params)
	if err != nil {
		return stripe.PaymentMethod{}, err
	}

	return *method, nil
}

func (p *stripePayer) GetPaymentIntent(ctx context.Context, intentUID string) (stripe.PaymentIntent, error) {
	intent, err := paymentintent.Get(intentUID, nil)
	if err != nil {
		return stripe.PaymentIntent{}, err
	}

	return *intent, nil
}

func (p *stripePayer) ConfirmPaymentIntent(ctx context.Context, intentUID string, params stripe.PaymentIntentConfirmParams) (stripe.PaymentIntent, error) {
	intent, err := paymentintent.Confirm(intentUID, &params)
	if err != nil {
		return stripe.PaymentIntent{}, err
	}

	return *intent, nil
}
