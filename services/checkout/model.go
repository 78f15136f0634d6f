package checkout

import (
	"time"

	"github.com/coursekit/storefront/services/basketapi"
	"github.com/coursekit/storefront/services/orderapi"
)

type StateName string

const (
	StateInitial    StateName = "initial"
	StateLoading    StateName = "loading"
	StateLoaded     StateName = "loaded"
	StateProcessing StateName = "processing"
	StateSuccess    StateName = "success"
	StateError      StateName = "error"
)

// Checkout steps as presented to the shopper. The authentication step is
// only ever reached through a step-up challenge, never by manual navigation.
const (
	StepReview         = 1
	StepPaymentMethod  = 2
	StepConfirm        = 3
	StepAuthentication = 4
	TotalSteps         = 4
)

const (
	ErrorCodeEmptyBasket  = "empty_basket"
	ErrorCodeGateway      = "gateway_error"
	ErrorCodeConfirmation = "confirmation_failed"
)

// Session is the working copy of a checkout in progress. The basket is a
// snapshot taken at initialization time: live basket mutations do not leak
// into a checkout once it has started, so prices cannot shift under the
// shopper mid-payment.
type Session struct {
	BasketUID                string
	Basket                   basketapi.Basket
	PaymentMethods           []orderapi.PaymentMethod
	SelectedPaymentMethodUID string
	BillingAddress           *basketapi.Address
	CurrentStep              int
	PendingClientSecret      string
	PendingPaymentIntentUID  string
	PendingOrder             *orderapi.Order
	CreatedAt                time.Time
	LastModified             time.Time
}

// HasPendingAuthentication tells whether a step-up challenge is outstanding.
func (s Session) HasPendingAuthentication() bool {
	return s.PendingClientSecret != ""
}

// SelectedPaymentMethod returns the currently selected method, nil when
// none is selected.
func (s Session) SelectedPaymentMethod() *orderapi.PaymentMethod {
	for i := range s.PaymentMethods {
		if s.PaymentMethods[i].UID == s.SelectedPaymentMethodUID {
			return &s.PaymentMethods[i]
		}
	}
	return nil
}

// State is the observable condition of a checkout. Exactly one of the
// payload fields is meaningful per Name: Session for loaded and processing,
// Order for success, ErrorMessage/ErrorCode for error.
type State struct {
	Name              StateName
	Session           *Session
	ProcessingMessage string
	Order             *orderapi.Order
	ErrorMessage      string
	ErrorCode         string
}

func initialState() State {
	return State{Name: StateInitial}
}

func loadingState() State {
	return State{Name: StateLoading}
}

// processingState marks a remote submission in flight. While persisted, the
// session is not workable: loadedSession rejects any concurrent operation
// until a terminal or loaded state replaces it.
func processingState(session Session, message string) State {
	return State{
		Name:              StateProcessing,
		Session:           &session,
		ProcessingMessage: message,
	}
}

func loadedState(session Session) State {
	return State{
		Name:    StateLoaded,
		Session: &session,
	}
}

func successState(session Session, order *orderapi.Order) State {
	return State{
		Name:    StateSuccess,
		Session: &session,
		Order:   order,
	}
}

// errorState keeps the session around so presentation code can still show
// the last known-good checkout data next to the error.
func errorState(session *Session, code string, message string) State {
	return State{
		Name:         StateError,
		Session:      session,
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
