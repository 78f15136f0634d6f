package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/coursekit/storefront/lib/mypublisher"
	"github.com/coursekit/storefront/lib/mystore"
	"github.com/coursekit/storefront/lib/mytime"
	"github.com/coursekit/storefront/services/basketapi"
	"github.com/coursekit/storefront/services/checkoutevents"
	"github.com/coursekit/storefront/services/orderapi"
	"github.com/coursekit/storefront/services/payment"
)

const basketUID = "basket_123"

func exampleBasket() basketapi.Basket {
	return basketapi.Basket{
		UID:      basketUID,
		Currency: "GBP",
		Items: []basketapi.Item{
			{
				UID:         "item_1",
				OfferingUID: "course_1",
				ItemType:    basketapi.ItemTypeCourse,
				Description: "Pottery for beginners",
				UnitPrice:   5000,
				TotalPrice:  5000,
			},
		},
		SubTotal:    5000,
		Total:       5000,
		ChargeTotal: 5000,
	}
}

func examplePaymentMethods() []orderapi.PaymentMethod {
	return []orderapi.PaymentMethod{
		{UID: "pm_1", Brand: "visa", Last4: "4242", ExpiryMonth: 12, ExpiryYear: 2028},
		{UID: "pm_2", Brand: "mastercard", Last4: "4444", ExpiryMonth: 6, ExpiryYear: 2029, IsDefault: true},
	}
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *Service, mystore.Store[State], *orderapi.MockClient, *payment.MockProcessor, *mypublisher.MockPublisher) {
	c := context.TODO()

	stateStore, _, _ := mystore.NewInMemoryStore[State](c)
	orderClient := orderapi.NewMockClient(ctrl)
	processor := payment.NewMockProcessor(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	service := NewService(stateStore, orderClient, processor, publisher, nower)

	return c, service, stateStore, orderClient, processor, publisher
}

func storeLoadedSession(c context.Context, t *testing.T, stateStore mystore.Store[State], session Session) {
	t.Helper()
	err := stateStore.Put(c, session.BasketUID, loadedState(session))
	assert.NoError(t, err)
}

func loadedSessionFixture() Session {
	return Session{
		BasketUID:                basketUID,
		Basket:                   exampleBasket(),
		PaymentMethods:           examplePaymentMethods(),
		SelectedPaymentMethodUID: "pm_2",
		CurrentStep:              StepConfirm,
		CreatedAt:                mytime.ExampleTime,
		LastModified:             mytime.ExampleTime,
	}
}

func TestInitializeCheckout(t *testing.T) {
	t.Run("Empty basket is rejected locally", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, _, _, _, _ := setup(t, ctrl)

		// given: no expectations at all, nothing remote may be called

		// when
		state, err := service.InitializeCheckout(c, basketapi.Basket{UID: basketUID, Currency: "GBP"})

		// then
		assert.Error(t, err)
		assert.Equal(t, StateError, state.Name)
		assert.Equal(t, ErrorCodeEmptyBasket, state.ErrorCode)
	})

	t.Run("Session starts at review step with default method selected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, publisher := setup(t, ctrl)

		// given
		orderClient.EXPECT().GetPaymentMethods(gomock.Any()).Return(examplePaymentMethods(), nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			BasketUID:     basketUID,
			AmountInCents: 5000,
			Currency:      "GBP",
			ItemCount:     1,
		}).Return(nil)

		// when
		state, err := service.InitializeCheckout(c, exampleBasket())

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateLoaded, state.Name)
		assert.Equal(t, StepReview, state.Session.CurrentStep)
		assert.Equal(t, "pm_2", state.Session.SelectedPaymentMethodUID)
		assert.Equal(t, int64(5000), state.Session.Basket.Total)

		stored, exists, err := stateStore.Get(c, basketUID)
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, StateLoaded, stored.Name)
	})

	t.Run("First method is selected when none is flagged default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, _, orderClient, _, publisher := setup(t, ctrl)

		// given
		orderClient.EXPECT().GetPaymentMethods(gomock.Any()).Return([]orderapi.PaymentMethod{
			{UID: "pm_1", Brand: "visa", Last4: "4242"},
		}, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil)

		// when
		state, err := service.InitializeCheckout(c, exampleBasket())

		// then
		assert.NoError(t, err)
		assert.Equal(t, "pm_1", state.Session.SelectedPaymentMethodUID)
	})

	t.Run("Session is loading while payment methods are fetched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, publisher := setup(t, ctrl)

		// given: observe the persisted state from inside the remote call
		orderClient.EXPECT().GetPaymentMethods(gomock.Any()).DoAndReturn(
			func(c context.Context) ([]orderapi.PaymentMethod, error) {
				stored, exists, err := stateStore.Get(c, basketUID)
				assert.NoError(t, err)
				assert.True(t, exists)
				assert.Equal(t, StateLoading, stored.Name)
				return examplePaymentMethods(), nil
			})
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutStarted{})).Return(nil)

		// when
		state, err := service.InitializeCheckout(c, exampleBasket())

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateLoaded, state.Name)
	})

	t.Run("Payment method fetch failure becomes observable error state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, _ := setup(t, ctrl)

		// given
		orderClient.EXPECT().GetPaymentMethods(gomock.Any()).Return(nil, fmt.Errorf("connection refused"))

		// when
		state, err := service.InitializeCheckout(c, exampleBasket())

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateError, state.Name)
		assert.Equal(t, ErrorCodeGateway, state.ErrorCode)

		stored, exists, err := stateStore.Get(c, basketUID)
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, StateError, stored.Name)
	})
}

func TestStepNavigation(t *testing.T) {
	t.Run("Steps clamp to the manual range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, _, _, _ := setup(t, ctrl)

		// given
		session := loadedSessionFixture()
		session.CurrentStep = StepReview
		storeLoadedSession(c, t, stateStore, session)

		// when: going back below the first step
		state, err := service.PreviousStep(c, basketUID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StepReview, state.Session.CurrentStep)

		// when: walking forward past the confirm step
		service.NextStep(c, basketUID)
		service.NextStep(c, basketUID)
		state, err = service.NextStep(c, basketUID)

		// then: never reaches the authentication step by navigation
		assert.NoError(t, err)
		assert.Equal(t, StepConfirm, state.Session.CurrentStep)
	})

	t.Run("Navigation without a checkout in progress fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, _, _, _, _ := setup(t, ctrl)

		// when
		_, err := service.NextStep(c, "unknown_basket")

		// then
		assert.Error(t, err)
	})
}

func TestSelectPaymentMethod(t *testing.T) {
	t.Run("Known method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, _, _, _ := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())

		// when
		state, err := service.SelectPaymentMethod(c, basketUID, "pm_1")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "pm_1", state.Session.SelectedPaymentMethodUID)
	})

	t.Run("Unknown method is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, _, _, _ := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())

		// when
		_, err := service.SelectPaymentMethod(c, basketUID, "pm_999")

		// then
		assert.Error(t, err)
	})
}

func TestCreatePaymentMethodFromCard(t *testing.T) {
	newCard := NewCardRequest{
		Card: payment.CardDetails{
			Number:      "4242424242424242",
			ExpiryMonth: "12",
			ExpiryYear:  "2030",
			CVC:         "123",
		},
		Email:          "jo@example.com",
		Name:           "Jo Smith",
		BillingAddress: basketapi.Address{City: "London", Country: "GB"},
		SetAsDefault:   true,
	}

	t.Run("Tokenize, persist and select", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, processor, _ := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		processor.EXPECT().CreatePaymentMethod(gomock.Any(), newCard.Card, gomock.Any()).Return("tok_abc", nil)
		orderClient.EXPECT().CreatePaymentMethod(gomock.Any(), "tok_abc", newCard.BillingAddress, true).
			Return(&orderapi.PaymentMethod{UID: "pm_3", Brand: "visa", Last4: "4242"}, nil)

		// when
		state, err := service.CreatePaymentMethodFromCard(c, basketUID, newCard)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateLoaded, state.Name)
		assert.Len(t, state.Session.PaymentMethods, 3)
		assert.Equal(t, "pm_3", state.Session.SelectedPaymentMethodUID)
	})

	t.Run("Declined card surfaces the structured reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, _, processor, _ := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		processor.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", payment.NewError(payment.ReasonInvalidCVC, "Your card's security code is incorrect"))

		// when
		state, err := service.CreatePaymentMethodFromCard(c, basketUID, newCard)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateError, state.Name)
		assert.Equal(t, string(payment.ReasonInvalidCVC), state.ErrorCode)
		assert.Equal(t, "Your card's security code is incorrect", state.ErrorMessage)
	})
}

func TestProcessPayment(t *testing.T) {
	t.Run("Immediate success completes the checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, publisher := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		orderClient.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(&orderapi.PlaceOrderResult{
				Success: true,
				Order:   &orderapi.Order{UID: "order_1", Status: "confirmed", Total: 5000},
			}, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			BasketUID:     basketUID,
			OrderUID:      "order_1",
			PaymentMethod: "card",
			AmountInCents: 5000,
			Currency:      "GBP",
		}).Return(nil)

		// when
		state, requiresAuth, err := service.ProcessPayment(c, basketUID, ProcessPaymentRequest{PaymentMethodType: "card"})

		// then
		assert.NoError(t, err)
		assert.False(t, requiresAuth)
		assert.Equal(t, StateSuccess, state.Name)
		assert.Equal(t, "order_1", state.Order.UID)
	})

	t.Run("Session is processing while the order is in flight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, publisher := setup(t, ctrl)

		// given: observe the persisted state from inside the remote call
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		orderClient.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(c context.Context, req orderapi.PlaceOrderRequest) (*orderapi.PlaceOrderResult, error) {
				stored, exists, err := stateStore.Get(c, basketUID)
				assert.NoError(t, err)
				assert.True(t, exists)
				assert.Equal(t, StateProcessing, stored.Name)
				assert.NotEmpty(t, stored.ProcessingMessage)

				// a concurrent submission attempt is rejected, not doubled
				_, _, concurrentErr := service.ProcessPayment(c, basketUID, ProcessPaymentRequest{PaymentMethodType: "card"})
				assert.Error(t, concurrentErr)

				return &orderapi.PlaceOrderResult{
					Success: true,
					Order:   &orderapi.Order{UID: "order_1", Status: "confirmed", Total: 5000},
				}, nil
			})
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutCompleted{})).Return(nil)

		// when
		state, _, err := service.ProcessPayment(c, basketUID, ProcessPaymentRequest{PaymentMethodType: "card"})

		// then: terminal state replaces the processing one
		assert.NoError(t, err)
		assert.Equal(t, StateSuccess, state.Name)
		stored, _, _ := stateStore.Get(c, basketUID)
		assert.Equal(t, StateSuccess, stored.Name)
	})

	t.Run("Step-up challenge keeps the session loaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, publisher := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		orderClient.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(&orderapi.PlaceOrderResult{
				ClientSecret:     "pi_1_secret_abc",
				NextAction:       "requires_action",
				PaymentIntentUID: "pi_1",
				Order:            &orderapi.Order{UID: "order_1", Status: "pending"},
			}, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.AuthenticationRequired{})).Return(nil)

		// when
		state, requiresAuth, err := service.ProcessPayment(c, basketUID, ProcessPaymentRequest{PaymentMethodType: "card"})

		// then: loaded, not success, and the caller is told a leg is pending
		assert.NoError(t, err)
		assert.True(t, requiresAuth)
		assert.Equal(t, StateLoaded, state.Name)
		assert.Equal(t, "pi_1_secret_abc", state.Session.PendingClientSecret)
		assert.Equal(t, StepAuthentication, state.Session.CurrentStep)
	})

	t.Run("Decline passes server wording through untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, publisher := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		orderClient.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(&orderapi.PlaceOrderResult{
				ErrorMessage: "Your card was declined",
				ErrorCode:    "card_declined",
			}, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutFailed{
			BasketUID:    basketUID,
			ErrorCode:    "card_declined",
			ErrorMessage: "Your card was declined",
		}).Return(nil)

		// when
		state, requiresAuth, err := service.ProcessPayment(c, basketUID, ProcessPaymentRequest{PaymentMethodType: "card"})

		// then
		assert.NoError(t, err)
		assert.False(t, requiresAuth)
		assert.Equal(t, StateError, state.Name)
		assert.Equal(t, "card_declined", state.ErrorCode)
		assert.Equal(t, "Your card was declined", state.ErrorMessage)
	})

	t.Run("Transport failure keeps the session for display", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, _ := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		orderClient.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("connection reset"))

		// when
		state, _, err := service.ProcessPayment(c, basketUID, ProcessPaymentRequest{PaymentMethodType: "card"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateError, state.Name)
		assert.Equal(t, ErrorCodeGateway, state.ErrorCode)
		assert.NotNil(t, state.Session)
		assert.Equal(t, int64(5000), state.Session.Basket.Total)
	})
}

func TestHandle3DSAuthentication(t *testing.T) {
	pendingSession := func() Session {
		session := loadedSessionFixture()
		session.PendingClientSecret = "pi_1_secret_abc"
		session.PendingPaymentIntentUID = "pi_1"
		session.PendingOrder = &orderapi.Order{UID: "order_1", Status: "pending"}
		session.CurrentStep = StepAuthentication
		return session
	}

	t.Run("Stale secret is rejected without touching the processor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, _, _, _ := setup(t, ctrl)

		// given: processor has no expectations, any call would fail the test
		storeLoadedSession(c, t, stateStore, pendingSession())

		// when
		_, err := service.Handle3DSAuthentication(c, basketUID, "pi_1_secret_STALE")

		// then
		assert.Error(t, err)

		stored, _, _ := stateStore.Get(c, basketUID)
		assert.Equal(t, StateLoaded, stored.Name)
		assert.Equal(t, "pi_1_secret_abc", stored.Session.PendingClientSecret)
	})

	t.Run("Succeeded challenge confirms and completes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, processor, publisher := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, pendingSession())
		processor.EXPECT().PresentAuthenticationChallenge(gomock.Any(), "pi_1_secret_abc").
			Return(payment.IntentResult{Status: payment.IntentSucceeded, IntentUID: "pi_1"}, nil)
		orderClient.EXPECT().ConfirmAuthenticatedPayment(gomock.Any(), "pi_1").Return(true, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutCompleted{})).Return(nil)

		// when
		state, err := service.Handle3DSAuthentication(c, basketUID, "pi_1_secret_abc")

		// then: the order is the server's, never synthesized locally
		assert.NoError(t, err)
		assert.Equal(t, StateSuccess, state.Name)
		assert.Equal(t, "order_1", state.Order.UID)
		assert.Equal(t, "", state.Session.PendingClientSecret)
	})

	t.Run("Cancelled challenge is a normal return to loaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, _, processor, publisher := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, pendingSession())
		processor.EXPECT().PresentAuthenticationChallenge(gomock.Any(), "pi_1_secret_abc").
			Return(payment.IntentResult{Status: payment.IntentCancelled, Reason: payment.ReasonUserCancelled}, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutAbandoned{
			BasketUID: basketUID,
			Reason:    "authentication_cancelled",
		}).Return(nil)

		// when
		state, err := service.Handle3DSAuthentication(c, basketUID, "pi_1_secret_abc")

		// then: never Error, secret cleared, back on the confirm step
		assert.NoError(t, err)
		assert.Equal(t, StateLoaded, state.Name)
		assert.Equal(t, "", state.Session.PendingClientSecret)
		assert.Equal(t, StepConfirm, state.Session.CurrentStep)
	})

	t.Run("Failed challenge is terminal for this attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, _, processor, publisher := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, pendingSession())
		processor.EXPECT().PresentAuthenticationChallenge(gomock.Any(), "pi_1_secret_abc").
			Return(payment.IntentResult{
				Status:  payment.IntentFailed,
				Reason:  payment.ReasonAuthFailed,
				Message: "Authentication was not completed",
			}, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutFailed{})).Return(nil)

		// when
		state, err := service.Handle3DSAuthentication(c, basketUID, "pi_1_secret_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateError, state.Name)
		assert.Equal(t, string(payment.ReasonAuthFailed), state.ErrorCode)
	})

	t.Run("Unconfirmed payment after success is an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, processor, publisher := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, pendingSession())
		processor.EXPECT().PresentAuthenticationChallenge(gomock.Any(), "pi_1_secret_abc").
			Return(payment.IntentResult{Status: payment.IntentSucceeded, IntentUID: "pi_1"}, nil)
		orderClient.EXPECT().ConfirmAuthenticatedPayment(gomock.Any(), "pi_1").Return(false, nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutFailed{})).Return(nil)

		// when
		state, err := service.Handle3DSAuthentication(c, basketUID, "pi_1_secret_abc")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateError, state.Name)
		assert.Equal(t, ErrorCodeConfirmation, state.ErrorCode)
	})
}

func TestRefreshPaymentMethods(t *testing.T) {
	t.Run("Fresh list replaces the stale one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, _ := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		orderClient.EXPECT().GetPaymentMethods(gomock.Any()).Return([]orderapi.PaymentMethod{
			{UID: "pm_9", Brand: "amex", Last4: "0005", IsDefault: true},
		}, nil)

		// when
		state, err := service.RefreshPaymentMethods(c, basketUID)

		// then: selection falls back to the new default
		assert.NoError(t, err)
		assert.Len(t, state.Session.PaymentMethods, 1)
		assert.Equal(t, "pm_9", state.Session.SelectedPaymentMethodUID)
	})

	t.Run("Failure leaves the visible state untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, service, stateStore, orderClient, _, _ := setup(t, ctrl)

		// given
		storeLoadedSession(c, t, stateStore, loadedSessionFixture())
		orderClient.EXPECT().GetPaymentMethods(gomock.Any()).Return(nil, fmt.Errorf("timeout"))

		// when
		state, err := service.RefreshPaymentMethods(c, basketUID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateLoaded, state.Name)
		assert.Len(t, state.Session.PaymentMethods, 2)
	})
}

func TestReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	c, service, stateStore, _, _, _ := setup(t, ctrl)

	// given
	storeLoadedSession(c, t, stateStore, loadedSessionFixture())

	// when
	state, err := service.Reset(c, basketUID)

	// then
	assert.NoError(t, err)
	assert.Equal(t, StateInitial, state.Name)

	_, exists, err := stateStore.Get(c, basketUID)
	assert.NoError(t, err)
	assert.False(t, exists)

	// and: resuming afterwards starts from scratch
	resumed, err := service.ResumeCheckout(c, basketUID)
	assert.NoError(t, err)
	assert.Equal(t, StateInitial, resumed.Name)
}
