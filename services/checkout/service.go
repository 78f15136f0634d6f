package checkout

import (
	"context"
	"fmt"

	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/lib/mypublisher"
	"github.com/coursekit/storefront/lib/mystore"
	"github.com/coursekit/storefront/lib/mytime"
	"github.com/coursekit/storefront/services/basketapi"
	"github.com/coursekit/storefront/services/checkoutevents"
	"github.com/coursekit/storefront/services/orderapi"
	"github.com/coursekit/storefront/services/payment"
)

// Service drives a checkout from basket snapshot to completed order. Each
// checkout is keyed by the basket UID and persisted between calls so the
// step-up-authentication leg can resume it after the shopper returns.
type Service struct {
	stateStore  mystore.Store[State]
	orderClient orderapi.Client
	processor   payment.Processor
	publisher   mypublisher.Publisher
	nower       mytime.Nower
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(stateStore mystore.Store[State], orderClient orderapi.Client, processor payment.Processor, publisher mypublisher.Publisher, nower mytime.Nower) *Service {
	return &Service{
		stateStore:  stateStore,
		orderClient: orderClient,
		processor:   processor,
		publisher:   publisher,
		nower:       nower,
		logger:      mylog.New("checkout"),
	}
}

func (s *Service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

// InitializeCheckout snapshots the basket, loads the available payment
// methods and starts a fresh session at the review step. An empty basket is
// rejected locally before any network call is made.
func (s *Service) InitializeCheckout(c context.Context, basket basketapi.Basket) (State, error) {
	if basket.IsEmpty() {
		return errorState(nil, ErrorCodeEmptyBasket, "Your basket is empty"),
			myerrors.NewInvalidInputError(fmt.Errorf("cannot start checkout on an empty basket"))
	}

	if _, err := s.persistState(c, basket.UID, loadingState()); err != nil {
		return initialState(), err
	}

	methods, err := s.orderClient.GetPaymentMethods(c)
	if err != nil {
		s.logger.Log(c, basket.UID, mylog.SeverityWarn, "Error fetching payment methods for basket %s: %s", basket.UID, err)
		newState, persistErr := s.persistState(c, basket.UID, errorState(nil, ErrorCodeGateway, "Could not load your payment methods"))
		return newState, persistErr
	}

	now := s.nower.Now()
	session := Session{
		BasketUID:                basket.UID,
		Basket:                   basket,
		PaymentMethods:           methods,
		SelectedPaymentMethodUID: defaultPaymentMethodUID(methods),
		CurrentStep:              StepReview,
		CreatedAt:                now,
		LastModified:             now,
	}
	state := loadedState(session)

	err = s.stateStore.RunInTransaction(c, func(c context.Context) error {
		err := s.stateStore.Put(c, basket.UID, state)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout session: %s", err))
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			BasketUID:     basket.UID,
			AmountInCents: basket.Total,
			Currency:      basket.Currency,
			ItemCount:     basket.ItemCount(),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return errorState(&session, ErrorCodeGateway, "Could not start your checkout"), nil
	}

	s.logger.Log(c, basket.UID, mylog.SeverityInfo, "Started checkout for basket %s (%s)", basket.UID, basket.TotalFormatted())

	return state, nil
}

// ResumeCheckout returns the persisted state for a basket, or Initial when
// no checkout has been started for it.
func (s *Service) ResumeCheckout(c context.Context, basketUID string) (State, error) {
	state, exists, err := s.stateStore.Get(c, basketUID)
	if err != nil {
		return initialState(), myerrors.NewInternalError(fmt.Errorf("error fetching checkout session %s: %s", basketUID, err))
	}
	if !exists {
		return initialState(), nil
	}

	return state, nil
}

func (s *Service) NextStep(c context.Context, basketUID string) (State, error) {
	return s.adjustStep(c, basketUID, +1)
}

func (s *Service) PreviousStep(c context.Context, basketUID string) (State, error) {
	return s.adjustStep(c, basketUID, -1)
}

// adjustStep is a pure local transition clamped to the manual step range.
// The authentication step is excluded: it is only entered via a step-up
// challenge out of ProcessPayment.
func (s *Service) adjustStep(c context.Context, basketUID string, delta int) (State, error) {
	var state State
	err := s.withLoadedSession(c, basketUID, func(c context.Context, session *Session) error {
		step := session.CurrentStep + delta
		if step < StepReview {
			step = StepReview
		}
		if step > StepConfirm {
			step = StepConfirm
		}
		session.CurrentStep = step
		state = loadedState(*session)

		return nil
	})

	return state, err
}

func (s *Service) SelectPaymentMethod(c context.Context, basketUID string, methodUID string) (State, error) {
	var state State
	err := s.withLoadedSession(c, basketUID, func(c context.Context, session *Session) error {
		found := false
		for _, m := range session.PaymentMethods {
			if m.UID == methodUID {
				found = true
				break
			}
		}
		if !found {
			return myerrors.NewInvalidInputError(fmt.Errorf("unknown payment method %s", methodUID))
		}
		session.SelectedPaymentMethodUID = methodUID
		state = loadedState(*session)

		return nil
	})

	return state, err
}

func (s *Service) UpdateBillingAddress(c context.Context, basketUID string, address basketapi.Address) (State, error) {
	var state State
	err := s.withLoadedSession(c, basketUID, func(c context.Context, session *Session) error {
		session.BillingAddress = &address
		state = loadedState(*session)

		return nil
	})

	return state, err
}

type NewCardRequest struct {
	Card           payment.CardDetails
	Email          string
	Name           string
	BillingAddress basketapi.Address
	SetAsDefault   bool
}

// CreatePaymentMethodFromCard tokenizes the card, persists the token
// server-side and appends the stored method to the session. Raw card data
// never touches the session store, only the tokenized reference does.
func (s *Service) CreatePaymentMethodFromCard(c context.Context, basketUID string, req NewCardRequest) (State, error) {
	state, session, err := s.loadedSession(c, basketUID)
	if err != nil {
		return state, err
	}

	token, err := s.processor.CreatePaymentMethod(c, req.Card, payment.BillingDetails{
		Email:   req.Email,
		Name:    req.Name,
		Street:  req.BillingAddress.Street,
		City:    req.BillingAddress.City,
		Postal:  req.BillingAddress.PostalCode,
		Country: req.BillingAddress.Country,
	})
	if err != nil {
		s.logger.Log(c, basketUID, mylog.SeverityWarn, "Card tokenization failed for basket %s: %s", basketUID, err)
		return s.persistState(c, basketUID, errorState(&session, string(payment.ReasonOf(err)), paymentErrorMessage(err)))
	}

	method, err := s.orderClient.CreatePaymentMethod(c, token, req.BillingAddress, req.SetAsDefault)
	if err != nil {
		s.logger.Log(c, basketUID, mylog.SeverityWarn, "Error storing payment method for basket %s: %s", basketUID, err)
		return s.persistState(c, basketUID, errorState(&session, ErrorCodeGateway, "Could not save your card"))
	}

	session.PaymentMethods = append(session.PaymentMethods, *method)
	if req.SetAsDefault || session.SelectedPaymentMethodUID == "" {
		session.SelectedPaymentMethodUID = method.UID
	}
	session.BillingAddress = &req.BillingAddress

	return s.persistState(c, basketUID, loadedState(session))
}

type ProcessPaymentRequest struct {
	PaymentMethodUID  string
	PaymentMethodType string
	BillingAddress    *basketapi.Address
	LineItemInfo      []orderapi.LineItemInfo
}

// ProcessPayment submits the order. The boolean result distinguishes "a
// step-up authentication leg is still pending" from "fully complete"; it is
// only meaningful when the returned state is not Error. The service never
// retries a submission on its own: a retry is a fresh caller-initiated
// attempt for the same basket, deduplicated server-side.
func (s *Service) ProcessPayment(c context.Context, basketUID string, req ProcessPaymentRequest) (State, bool, error) {
	state, session, err := s.loadedSession(c, basketUID)
	if err != nil {
		return state, false, err
	}
	if session.Basket.IsEmpty() {
		return state, false, myerrors.NewInvalidInputError(fmt.Errorf("cannot pay for an empty basket"))
	}

	methodUID := req.PaymentMethodUID
	if methodUID == "" {
		methodUID = session.SelectedPaymentMethodUID
	}
	billing := req.BillingAddress
	if billing == nil {
		billing = session.BillingAddress
	}
	lineItems := req.LineItemInfo
	if lineItems == nil {
		lineItems = lineItemInfoFromBasket(session.Basket)
	}

	// While the submission is in flight no other operation may touch the
	// session, and observers see it as processing rather than retryable.
	if _, err := s.persistState(c, basketUID, processingState(session, "Processing your payment")); err != nil {
		return state, false, err
	}

	result, err := s.orderClient.PlaceOrder(c, orderapi.PlaceOrderRequest{
		Basket:            session.Basket,
		PaymentMethodUID:  methodUID,
		PaymentMethodType: req.PaymentMethodType,
		BillingAddress:    billing,
		LineItemInfo:      lineItems,
	})
	if err != nil {
		s.logger.Log(c, basketUID, mylog.SeverityError, "Error placing order for basket %s: %s", basketUID, err)
		newState, persistErr := s.persistState(c, basketUID, errorState(&session, ErrorCodeGateway, "Could not submit your order"))
		return newState, false, persistErr
	}

	if result.Success {
		return s.completeCheckout(c, basketUID, session, result.Order, req.PaymentMethodType)
	}

	if result.RequiresAction() {
		session.PendingClientSecret = result.ClientSecret
		session.PendingPaymentIntentUID = result.PaymentIntentUID
		session.PendingOrder = result.Order
		session.CurrentStep = StepAuthentication
		newState := loadedState(session)

		err = s.stateStore.RunInTransaction(c, func(c context.Context) error {
			err := s.stateStore.Put(c, basketUID, newState)
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error storing checkout session: %s", err))
			}

			return s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.AuthenticationRequired{
				BasketUID:        basketUID,
				PaymentIntentUID: result.PaymentIntentUID,
				AmountInCents:    session.Basket.Total,
				Currency:         session.Basket.Currency,
			})
		})
		if err != nil {
			return newState, false, myerrors.NewInternalError(err)
		}

		s.logger.Log(c, basketUID, mylog.SeverityInfo, "Payment for basket %s needs step-up authentication", basketUID)

		return newState, true, nil
	}

	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Payment for basket %s rejected: %s (%s)", basketUID, result.ErrorMessage, result.ErrorCode)

	newState, err := s.failCheckout(c, basketUID, session, result.ErrorCode, result.ErrorMessage)

	return newState, false, err
}

// Handle3DSAuthentication completes or abandons a pending step-up
// challenge. The secret must match the one stored on the session; a stale
// secret is rejected locally without contacting the processor at all.
func (s *Service) Handle3DSAuthentication(c context.Context, basketUID string, clientSecret string) (State, error) {
	state, session, err := s.loadedSession(c, basketUID)
	if err != nil {
		return state, err
	}
	if !session.HasPendingAuthentication() || session.PendingClientSecret != clientSecret {
		return state, myerrors.NewInvalidInputError(fmt.Errorf("authentication secret does not match the pending payment"))
	}

	if _, err := s.persistState(c, basketUID, processingState(session, "Verifying your payment")); err != nil {
		return state, err
	}

	result, err := s.processor.PresentAuthenticationChallenge(c, clientSecret)
	if err != nil {
		s.logger.Log(c, basketUID, mylog.SeverityError, "Authentication challenge failed for basket %s: %s", basketUID, err)
		return s.persistState(c, basketUID, errorState(&session, ErrorCodeGateway, "Could not verify your payment"))
	}

	switch result.Status {
	case payment.IntentSucceeded:
		confirmed, err := s.orderClient.ConfirmAuthenticatedPayment(c, session.PendingPaymentIntentUID)
		if err != nil {
			s.logger.Log(c, basketUID, mylog.SeverityError, "Error confirming payment %s: %s", session.PendingPaymentIntentUID, err)
			return s.persistState(c, basketUID, errorState(&session, ErrorCodeGateway, "Could not confirm your payment"))
		}
		if !confirmed {
			return s.failCheckout(c, basketUID, session, ErrorCodeConfirmation, "Your payment could not be confirmed")
		}

		// The order came back provisionally with the challenge; only the
		// server-side confirmation makes it final.
		order := session.PendingOrder
		newState, _, err := s.completeCheckout(c, basketUID, session, order, "card")

		return newState, err

	case payment.IntentCancelled:
		// Normal abandonment, not an error: the shopper backed out of the
		// challenge and lands on the confirmation step again, free to retry
		// or pick another method.
		session.PendingClientSecret = ""
		session.PendingPaymentIntentUID = ""
		session.PendingOrder = nil
		session.CurrentStep = StepConfirm
		newState := loadedState(session)

		err = s.stateStore.RunInTransaction(c, func(c context.Context) error {
			err := s.stateStore.Put(c, basketUID, newState)
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error storing checkout session: %s", err))
			}

			return s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutAbandoned{
				BasketUID: basketUID,
				Reason:    "authentication_cancelled",
			})
		})
		if err != nil {
			return newState, myerrors.NewInternalError(err)
		}

		s.logger.Log(c, basketUID, mylog.SeverityInfo, "Shopper cancelled authentication for basket %s", basketUID)

		return newState, nil

	case payment.IntentRequiresAction:
		// Challenge still outstanding, put the session back as it was.
		return s.persistState(c, basketUID, state)

	default:
		return s.failCheckout(c, basketUID, session, string(result.Reason), authFailureMessage(result))
	}
}

// RefreshPaymentMethods is best-effort: a failure is logged and the visible
// state left untouched, since a stale method list beats losing checkout
// progress.
func (s *Service) RefreshPaymentMethods(c context.Context, basketUID string) (State, error) {
	state, session, err := s.loadedSession(c, basketUID)
	if err != nil {
		return state, err
	}

	methods, err := s.orderClient.GetPaymentMethods(c)
	if err != nil {
		s.logger.Log(c, basketUID, mylog.SeverityWarn, "Error refreshing payment methods for basket %s: %s", basketUID, err)
		return state, nil
	}

	session.PaymentMethods = methods
	if session.SelectedPaymentMethod() == nil {
		session.SelectedPaymentMethodUID = defaultPaymentMethodUID(methods)
	}

	return s.persistState(c, basketUID, loadedState(session))
}

// Reset discards the checkout and returns to Initial. Used after success or
// an explicit cancellation.
func (s *Service) Reset(c context.Context, basketUID string) (State, error) {
	err := s.stateStore.Delete(c, basketUID)
	if err != nil {
		return initialState(), myerrors.NewInternalError(fmt.Errorf("error deleting checkout session %s: %s", basketUID, err))
	}

	return initialState(), nil
}

func (s *Service) completeCheckout(c context.Context, basketUID string, session Session, order *orderapi.Order, paymentMethod string) (State, bool, error) {
	session.PendingClientSecret = ""
	session.PendingPaymentIntentUID = ""
	session.PendingOrder = nil
	newState := successState(session, order)

	orderUID := ""
	if order != nil {
		orderUID = order.UID
	}

	err := s.stateStore.RunInTransaction(c, func(c context.Context) error {
		err := s.stateStore.Put(c, basketUID, newState)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout session: %s", err))
		}

		return s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			BasketUID:     basketUID,
			OrderUID:      orderUID,
			PaymentMethod: paymentMethod,
			AmountInCents: session.Basket.Total,
			Currency:      session.Basket.Currency,
		})
	})
	if err != nil {
		return newState, false, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Checkout for basket %s completed with order %s", basketUID, orderUID)

	return newState, false, nil
}

func (s *Service) failCheckout(c context.Context, basketUID string, session Session, code string, message string) (State, error) {
	newState := errorState(&session, code, message)

	err := s.stateStore.RunInTransaction(c, func(c context.Context) error {
		err := s.stateStore.Put(c, basketUID, newState)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout session: %s", err))
		}

		return s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutFailed{
			BasketUID:    basketUID,
			ErrorCode:    code,
			ErrorMessage: message,
		})
	})
	if err != nil {
		return newState, myerrors.NewInternalError(err)
	}

	return newState, nil
}

// loadedSession fetches the checkout for basketUID and requires it to still
// carry a workable session.
func (s *Service) loadedSession(c context.Context, basketUID string) (State, Session, error) {
	state, exists, err := s.stateStore.Get(c, basketUID)
	if err != nil {
		return initialState(), Session{}, myerrors.NewInternalError(fmt.Errorf("error fetching checkout session %s: %s", basketUID, err))
	}
	if !exists || state.Session == nil {
		return initialState(), Session{}, myerrors.NewNotFoundError(fmt.Errorf("no checkout in progress for basket %s", basketUID))
	}
	if state.Name != StateLoaded {
		return state, Session{}, myerrors.NewInvalidInputError(fmt.Errorf("checkout for basket %s is %s, not loaded", basketUID, state.Name))
	}

	session := *state.Session
	session.LastModified = s.nower.Now()

	return state, session, nil
}

// withLoadedSession runs a local session mutation inside a transaction and
// persists the state the mutation produced.
func (s *Service) withLoadedSession(c context.Context, basketUID string, f func(c context.Context, session *Session) error) error {
	return s.stateStore.RunInTransaction(c, func(c context.Context) error {
		_, session, err := s.loadedSession(c, basketUID)
		if err != nil {
			return err
		}

		err = f(c, &session)
		if err != nil {
			return err
		}

		return s.stateStore.Put(c, basketUID, loadedState(session))
	})
}

func (s *Service) persistState(c context.Context, basketUID string, state State) (State, error) {
	err := s.stateStore.Put(c, basketUID, state)
	if err != nil {
		return state, myerrors.NewInternalError(fmt.Errorf("error storing checkout session: %s", err))
	}

	return state, nil
}

// lineItemInfoFromBasket derives the per-item payment schedule from the
// snapshot when the caller did not pass one explicitly.
func lineItemInfoFromBasket(basket basketapi.Basket) []orderapi.LineItemInfo {
	infos := make([]orderapi.LineItemInfo, 0, len(basket.Items))
	for _, item := range basket.Items {
		info := orderapi.LineItemInfo{
			BasketItemUID: item.UID,
			PayDeposit:    item.PayDeposit,
		}
		if item.ChargeFromDate != nil {
			info.ChargeFromDate = item.ChargeFromDate.Format("2006-01-02")
		}
		infos = append(infos, info)
	}

	return infos
}

func defaultPaymentMethodUID(methods []orderapi.PaymentMethod) string {
	for _, m := range methods {
		if m.IsDefault {
			return m.UID
		}
	}
	if len(methods) > 0 {
		return methods[0].UID
	}

	return ""
}

func paymentErrorMessage(err error) string {
	perr, ok := err.(*payment.Error)
	if ok {
		return perr.Message
	}

	return "Your card could not be processed"
}

func authFailureMessage(result payment.IntentResult) string {
	if result.Message != "" {
		return result.Message
	}

	return "Payment authentication failed"
}
