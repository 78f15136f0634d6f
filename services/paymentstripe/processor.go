package paymentstripe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v74"

	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/payment"
)

// Processor adapts Stripe to the narrow surface the checkout orchestrator
// needs. All Stripe-specific shapes stay behind this boundary: callers only
// ever see the closed payment.IntentResult set.
type Processor struct {
	payer  Payer
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewProcessor(apiKey string, payer Payer) *Processor {
	payer.UseAPIKey(apiKey)

	return &Processor{
		payer:  payer,
		logger: mylog.New("paymentstripe"),
	}
}

func (p *Processor) CreatePaymentMethod(c context.Context, card payment.CardDetails, billing payment.BillingDetails) (string, error) {
	expMonth, err := strconv.ParseInt(card.ExpiryMonth, 10, 64)
	if err != nil {
		return "", payment.NewError(payment.ReasonInvalidExpiry,
			fmt.Sprintf("invalid expiry month %q", card.ExpiryMonth))
	}
	expYear, err := strconv.ParseInt(card.ExpiryYear, 10, 64)
	if err != nil {
		return "", payment.NewError(payment.ReasonInvalidExpiry,
			fmt.Sprintf("invalid expiry year %q", card.ExpiryYear))
	}

	method, err := p.payer.CreatePaymentMethod(c, stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(expMonth),
			ExpYear:  stripe.Int64(expYear),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Email: stripe.String(billing.Email),
			Name:  stripe.String(billing.Name),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(billing.Street),
				City:       stripe.String(billing.City),
				PostalCode: stripe.String(billing.Postal),
				Country:    stripe.String(billing.Country),
			},
		},
	})
	if err != nil {
		return "", toPaymentError(err)
	}

	return method.ID, nil
}

func (p *Processor) ConfirmPayment(c context.Context, clientSecret string) (payment.IntentResult, error) {
	intentUID, err := intentUIDFromSecret(clientSecret)
	if err != nil {
		return payment.IntentResult{}, err
	}

	intent, err := p.payer.ConfirmPaymentIntent(c, intentUID, stripe.PaymentIntentConfirmParams{})
	if err != nil {
		p.logger.Log(c, intentUID, mylog.SeverityWarn, "Error confirming intent %s: %s", intentUID, err)
		return resultFromError(err), nil
	}

	return resultFromIntent(intent), nil
}

func (p *Processor) PresentAuthenticationChallenge(c context.Context, clientSecret string) (payment.IntentResult, error) {
	intentUID, err := intentUIDFromSecret(clientSecret)
	if err != nil {
		return payment.IntentResult{}, err
	}

	// The challenge itself runs in the shopper's browser; here we fetch the
	// intent to learn how it ended.
	intent, err := p.payer.GetPaymentIntent(c, intentUID)
	if err != nil {
		p.logger.Log(c, intentUID, mylog.SeverityWarn, "Error fetching intent %s: %s", intentUID, err)
		return resultFromError(err), nil
	}

	return resultFromIntent(intent), nil
}

// intentUIDFromSecret extracts the intent identifier from a client secret
// of the form "pi_xxx_secret_yyy".
func intentUIDFromSecret(clientSecret string) (string, error) {
	idx := strings.Index(clientSecret, "_secret_")
	if !strings.HasPrefix(clientSecret, "pi_") || idx < 0 {
		return "", payment.NewError(payment.ReasonProcessingError,
			fmt.Sprintf("malformed client secret %q", clientSecret))
	}

	return clientSecret[:idx], nil
}

func resultFromIntent(intent stripe.PaymentIntent) payment.IntentResult {
	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return payment.IntentResult{
			Status:    payment.IntentSucceeded,
			IntentUID: intent.ID,
		}
	case stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusProcessing:
		return payment.IntentResult{
			Status:    payment.IntentRequiresAction,
			IntentUID: intent.ID,
		}
	case stripe.PaymentIntentStatusCanceled:
		return payment.IntentResult{
			Status:    payment.IntentCancelled,
			IntentUID: intent.ID,
			Reason:    payment.ReasonUserCancelled,
		}
	default:
		result := payment.IntentResult{
			Status:    payment.IntentFailed,
			IntentUID: intent.ID,
			Reason:    payment.ReasonAuthFailed,
			Message:   "Payment authentication failed",
		}
		if intent.LastPaymentError != nil {
			result.Reason = reasonFromCode(intent.LastPaymentError.Code)
			result.Message = intent.LastPaymentError.Msg
		}
		return result
	}
}

func resultFromError(err error) payment.IntentResult {
	serr, ok := err.(*stripe.Error)
	if !ok {
		return payment.IntentResult{
			Status:  payment.IntentFailed,
			Reason:  payment.ReasonProcessingError,
			Message: "Your payment could not be processed",
		}
	}

	return payment.IntentResult{
		Status:  payment.IntentFailed,
		Reason:  reasonFromCode(serr.Code),
		Message: serr.Msg,
	}
}

func toPaymentError(err error) error {
	serr, ok := err.(*stripe.Error)
	if !ok {
		return payment.NewError(payment.ReasonProcessingError, "Your card could not be processed")
	}

	return payment.NewError(reasonFromCode(serr.Code), serr.Msg)
}

func reasonFromCode(code stripe.ErrorCode) payment.FailureReason {
	switch code {
	case stripe.ErrorCodeCardDeclined, stripe.ErrorCodeExpiredCard:
		return payment.ReasonCardDeclined
	case stripe.ErrorCodeIncorrectNumber, stripe.ErrorCodeInvalidNumber:
		return payment.ReasonInvalidNumber
	case stripe.ErrorCodeInvalidExpiryMonth, stripe.ErrorCodeInvalidExpiryYear:
		return payment.ReasonInvalidExpiry
	case stripe.ErrorCodeIncorrectCVC, stripe.ErrorCodeInvalidCVC:
		return payment.ReasonInvalidCVC
	default:
		return payment.ReasonProcessingError
	}
}
