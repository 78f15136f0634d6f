package paymentadyen

import (
	"context"
	"strings"

	"github.com/adyen/adyen-go-api-library/v6/src/adyen"
	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
	"github.com/adyen/adyen-go-api-library/v6/src/common"
)

//go:generate mockgen -source=payer.go -package paymentadyen -destination payer_mock.go Payer
type Payer interface {
	UseAPIKey(key string)
	Payments(ctx context.Context, req checkout.PaymentRequest) (checkout.PaymentResponse, error)
	PaymentsDetails(ctx context.Context, req checkout.DetailsRequest) (checkout.PaymentDetailsResponse, error)
}

type adyenPayer struct {
	client *adyen.APIClient
}

func NewPayer(environment string, apiKey string) Payer {
	return &adyenPayer{
		client: adyen.NewClient(&common.Config{
			ApiKey:      apiKey,
			Environment: common.Environment(strings.ToUpper(environment)),
			Debug:       false,
		}),
	}
}

func (p *adyenPayer) UseAPIKey(apiKey string) {
	p.client.GetConfig().ApiKey = apiKey
}

func (p *adyenPayer) Payments(ctx context.Context, req checkout.PaymentRequest) (checkout.PaymentResponse, error) {
	resp, _, err := p.client.Checkout.Payments(&req, ctx)
	if err != nil {
		return checkout.PaymentResponse{}, err
	}
	return resp, nil
}

func (p *adyenPayer) PaymentsDetails(ctx context.Context, req checkout.DetailsRequest) (checkout.PaymentDetailsResponse, error) {
	resp, _, err := p.client.Checkout.PaymentsDetails(&req, ctx)
	if err != nil {
		return checkout.PaymentDetailsResponse{}, err
	}
	return resp, nil
}
