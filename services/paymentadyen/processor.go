package paymentadyen

import (
	"context"
	"fmt"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
	"github.com/adyen/adyen-go-api-library/v6/src/common"

	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/payment"
)

type Config struct {
	Environment     string
	APIKey          string
	MerchantAccount string
}

// Processor adapts Adyen to the narrow surface the checkout orchestrator
// needs. Adyen-specific result codes stay behind this boundary: callers
// only ever see the closed payment.IntentResult set.
type Processor struct {
	config Config
	payer  Payer
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewProcessor(cfg Config, payer Payer) *Processor {
	return &Processor{
		config: cfg,
		payer:  payer,
		logger: mylog.New("paymentadyen"),
	}
}

// CreatePaymentMethod tokenizes the card through a zero-amount verification
// payment with storePaymentMethod set, and returns the stored-detail
// reference Adyen hands back.
func (p *Processor) CreatePaymentMethod(c context.Context, card payment.CardDetails, billing payment.BillingDetails) (string, error) {
	resp, err := p.payer.Payments(c, checkout.PaymentRequest{
		MerchantAccount: p.config.MerchantAccount,
		Reference:       fmt.Sprintf("verify-%s", billing.Email),
		Amount: checkout.Amount{
			Currency: "GBP",
			Value:    0,
		},
		PaymentMethod: map[string]interface{}{
			"type":        "scheme",
			"number":      card.Number,
			"expiryMonth": card.ExpiryMonth,
			"expiryYear":  card.ExpiryYear,
			"cvc":         card.CVC,
			"holderName":  billing.Name,
		},
		ShopperEmail:       billing.Email,
		StorePaymentMethod: true,
	})
	if err != nil {
		return "", payment.NewError(payment.ReasonProcessingError, "Your card could not be processed")
	}
	if resp.ResultCode == nil || *resp.ResultCode != common.Authorised {
		return "", payment.NewError(reasonFromRefusal(resp.RefusalReason),
			refusalMessage(resp.RefusalReason))
	}

	reference := resp.AdditionalData["recurring.recurringDetailReference"]
	if reference == "" {
		return "", payment.NewError(payment.ReasonProcessingError, "Your card could not be stored")
	}

	return reference, nil
}

func (p *Processor) ConfirmPayment(c context.Context, clientSecret string) (payment.IntentResult, error) {
	return p.submitDetails(c, clientSecret)
}

// PresentAuthenticationChallenge resolves a pending 3-D Secure leg. The
// challenge itself ran on the shopper's device; submitting the payment data
// back tells us how it ended.
func (p *Processor) PresentAuthenticationChallenge(c context.Context, clientSecret string) (payment.IntentResult, error) {
	return p.submitDetails(c, clientSecret)
}

func (p *Processor) submitDetails(c context.Context, paymentData string) (payment.IntentResult, error) {
	if paymentData == "" {
		return payment.IntentResult{}, payment.NewError(payment.ReasonProcessingError, "missing payment data")
	}

	resp, err := p.payer.PaymentsDetails(c, checkout.DetailsRequest{
		PaymentData: paymentData,
		Details:     checkout.PaymentCompletionDetails{},
	})
	if err != nil {
		p.logger.Log(c, paymentData, mylog.SeverityWarn, "Error submitting payment details: %s", err)
		return payment.IntentResult{
			Status:  payment.IntentFailed,
			Reason:  payment.ReasonProcessingError,
			Message: "Your payment could not be processed",
		}, nil
	}

	return resultFromCode(resp.ResultCode, resp.PspReference, resp.RefusalReason), nil
}

func resultFromCode(code *common.ResultCode, pspReference string, refusalReason string) payment.IntentResult {
	if code == nil {
		return payment.IntentResult{
			Status:    payment.IntentFailed,
			IntentUID: pspReference,
			Reason:    payment.ReasonProcessingError,
			Message:   "Your payment could not be processed",
		}
	}

	switch *code {
	case common.Authorised, common.Received:
		return payment.IntentResult{
			Status:    payment.IntentSucceeded,
			IntentUID: pspReference,
		}
	case common.RedirectShopper, common.IdentifyShopper, common.ChallengeShopper,
		common.PresentToShopper, common.Pending:
		return payment.IntentResult{
			Status:    payment.IntentRequiresAction,
			IntentUID: pspReference,
		}
	case common.Cancelled:
		return payment.IntentResult{
			Status:    payment.IntentCancelled,
			IntentUID: pspReference,
			Reason:    payment.ReasonUserCancelled,
		}
	default:
		return payment.IntentResult{
			Status:    payment.IntentFailed,
			IntentUID: pspReference,
			Reason:    reasonFromRefusal(refusalReason),
			Message:   refusalMessage(refusalReason),
		}
	}
}

// reasonFromRefusal maps Adyen refusal wording onto the structured reasons.
// https://docs.adyen.com/development-resources/refusal-reasons
func reasonFromRefusal(refusalReason string) payment.FailureReason {
	switch refusalReason {
	case "Refused", "Blocked Card", "Expired Card", "Not enough balance":
		return payment.ReasonCardDeclined
	case "Invalid Card Number":
		return payment.ReasonInvalidNumber
	case "CVC Declined":
		return payment.ReasonInvalidCVC
	case "3D Not Authenticated", "Authentication required":
		return payment.ReasonAuthFailed
	default:
		return payment.ReasonProcessingError
	}
}

func refusalMessage(refusalReason string) string {
	if refusalReason != "" {
		return refusalReason
	}

	return "Your payment was not authorised"
}
