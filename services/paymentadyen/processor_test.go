package paymentadyen

import (
	"context"
	"testing"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
	"github.com/adyen/adyen-go-api-library/v6/src/common"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/coursekit/storefront/services/payment"
)

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *Processor, *MockPayer) {
	c := context.TODO()
	payer := NewMockPayer(ctrl)
	processor := NewProcessor(Config{
		Environment:     "TEST",
		APIKey:          "adyen_api_key",
		MerchantAccount: "CourseKitECOM",
	}, payer)
	return c, processor, payer
}

func resultCode(code common.ResultCode) *common.ResultCode {
	return &code
}

func TestCreatePaymentMethod(t *testing.T) {
	t.Run("Verification payment yields stored reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().Payments(gomock.Any(), gomock.Any()).
			Return(checkout.PaymentResponse{
				ResultCode:   resultCode(common.Authorised),
				PspReference: "psp_1",
				AdditionalData: map[string]string{
					"recurring.recurringDetailReference": "ref_abc",
				},
			}, nil)

		// when
		token, err := processor.CreatePaymentMethod(c, payment.CardDetails{
			Number:      "4111111111111111",
			ExpiryMonth: "03",
			ExpiryYear:  "2030",
			CVC:         "737",
		}, payment.BillingDetails{Email: "jo@example.com", Name: "Jo Smith"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "ref_abc", token)
	})

	t.Run("Refusal maps onto a structured reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().Payments(gomock.Any(), gomock.Any()).
			Return(checkout.PaymentResponse{
				ResultCode:    resultCode(common.Refused),
				RefusalReason: "CVC Declined",
			}, nil)

		// when
		_, err := processor.CreatePaymentMethod(c, payment.CardDetails{Number: "4111111111111111"}, payment.BillingDetails{})

		// then
		assert.Error(t, err)
		assert.Equal(t, payment.ReasonInvalidCVC, payment.ReasonOf(err))
	})
}

func TestPresentAuthenticationChallenge(t *testing.T) {
	t.Run("Authorised outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().PaymentsDetails(gomock.Any(), gomock.Any()).
			Return(checkout.PaymentDetailsResponse{
				ResultCode:   resultCode(common.Authorised),
				PspReference: "psp_1",
			}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "payment_data_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentSucceeded, result.Status)
		assert.Equal(t, "psp_1", result.IntentUID)
	})

	t.Run("Cancelled outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().PaymentsDetails(gomock.Any(), gomock.Any()).
			Return(checkout.PaymentDetailsResponse{
				ResultCode:   resultCode(common.Cancelled),
				PspReference: "psp_1",
			}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "payment_data_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentCancelled, result.Status)
		assert.Equal(t, payment.ReasonUserCancelled, result.Reason)
	})

	t.Run("Refused outcome keeps the platform wording", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().PaymentsDetails(gomock.Any(), gomock.Any()).
			Return(checkout.PaymentDetailsResponse{
				ResultCode:    resultCode(common.Refused),
				RefusalReason: "Expired Card",
			}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "payment_data_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentFailed, result.Status)
		assert.Equal(t, payment.ReasonCardDeclined, result.Reason)
		assert.Equal(t, "Expired Card", result.Message)
	})

	t.Run("Challenge still pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().PaymentsDetails(gomock.Any(), gomock.Any()).
			Return(checkout.PaymentDetailsResponse{
				ResultCode: resultCode(common.ChallengeShopper),
			}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "payment_data_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentRequiresAction, result.Status)
	})

	t.Run("Missing result code is a processing failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, processor, payer := setup(t, ctrl)

		// given
		payer.EXPECT().PaymentsDetails(gomock.Any(), gomock.Any()).
			Return(checkout.PaymentDetailsResponse{}, nil)

		// when
		result, err := processor.PresentAuthenticationChallenge(c, "payment_data_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, payment.IntentFailed, result.Status)
		assert.Equal(t, payment.ReasonProcessingError, result.Reason)
	})
}
