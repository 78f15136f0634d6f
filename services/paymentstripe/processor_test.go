package paymentstripe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/mock/gomock"

	"github.com/coursekit/storefront/services/payment"
)

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *Processor, *MockPayer) {
	c := context.TODO()
	payer := NewMockPayer(ctrl)
	payer.EXPECT().UseAPIKey("sk_test_123")
	processor := NewProcessor("sk_test_123", payer)
	return c, processor, payer
}

func TestCreatePaymentMethod(t *testing.T) {
	t.Run("Tokenization returns method id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any()).
			Return(stripe.PaymentMethod{ID: "pm_abc"}, nil)

		// when
		token, err := processor.CreatePaymentMethod(c, payment.CardDetails{
			Number:      "4242424242424242",
			ExpiryMonth: "12",
			ExpiryYear:  "2030",
			CVC:         "123",
		}, payment.BillingDetails{Email: "jo@example.com", Name: "Jo Smith"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "pm_abc", token)
	})

	t.Run("Card error maps onto a structured reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any()).
			Return(stripe.PaymentMethod{}, &stripe.Error{
				Code: stripe.ErrorCodeIncorrectCVC,
				Msg:  "Your card's security code is incorrect.",
			})

		// when
		_, err := processor.CreatePaymentMethod(c, payment.CardDetails{
			Number:      "4000000000000127",
			ExpiryMonth: "12",
			ExpiryYear:  "2030",
			CVC:         "999",
		}, payment.BillingDetails{})

		// then
		assert.Error(t, err)
		assert.Equal(t, payment.ReasonInvalidCVC, payment.ReasonOf(err))
	})

	t.Run("Non-numeric expiry is rejected before tokenization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, _ := setup(t, ctrl)

		// when
		_, err := processor.CreatePaymentMethod(c, payment.CardDetails{
			Number:      "4242424242424242",
			ExpiryMonth: "xx",
			ExpiryYear:  "2030",
			CVC:         "123",
		}, payment.BillingDetails{})

		// then
		assert.Error(t, err)
		assert.Equal(t, payment.ReasonInvalidExpiry, payment.ReasonOf(err))
	})
}

func TestPresentAuthenticationChallenge(t *testing.T) {
	t.Run("Succeeded intent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().GetPaymentIntent(gomock.Any(), "pi_1").
			Return(stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "pi_1_secret_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentSucceeded, result.Status)
		assert.Equal(t, "pi_1", result.IntentUID)
	})

	t.Run("Cancelled intent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().GetPaymentIntent(gomock.Any(), "pi_1").
			Return(stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusCanceled}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "pi_1_secret_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentCancelled, result.Status)
		assert.Equal(t, payment.ReasonUserCancelled, result.Reason)
	})

	t.Run("Failed intent carries the processor wording", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().GetPaymentIntent(gomock.Any(), "pi_1").
			Return(stripe.PaymentIntent{
				ID:     "pi_1",
				Status: stripe.PaymentIntentStatusRequiresPaymentMethod,
				LastPaymentError: &stripe.Error{
					Code: stripe.ErrorCodeCardDeclined,
					Msg:  "Your card was declined.",
				},
			}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "pi_1_secret_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentFailed, result.Status)
		assert.Equal(t, payment.ReasonCardDeclined, result.Reason)
		assert.Equal(t, "Your card was declined.", result.Message)
	})

	t.Run("Malformed secret never reaches the network", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, _ := setup(t, ctrl)

		// when
		_, err := processor.PresentAuthenticationChallenge(c, "not-a-secret")

		// then
		assert.Error(t, err)
	})
}

func TestConfirmPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	c, processor, payer := setup(t, ctrl)

	// given
	payer.EXPECT().ConfirmPaymentIntent(gomock.Any(), "pi_1", gomock.Any()).
		Return(stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusRequiresAction}, nil)

	// when
	result, err := processor.ConfirmPayment(c, "pi_1_secret_abc")

	// then
	assert.NoError(t, err)
	assert.Equal(t, payment.IntentRequiresAction, result.Status)
}
