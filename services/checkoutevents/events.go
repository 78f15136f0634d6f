package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/lib/myevents"
)

const (
	TopicName                  = "checkout"
	checkoutStartedName        = TopicName + ".started"
	authenticationRequiredName = TopicName + ".authenticationRequired"
	checkoutCompletedName      = TopicName + ".completed"
	checkoutAbandonedName      = TopicName + ".abandoned"
	checkoutFailedName         = TopicName + ".failed"
)

type CheckoutEventService interface {
	Subscribe(c context.Context) error
	OnCheckoutStarted(c context.Context, topic string, event CheckoutStarted) error
	OnAuthenticationRequired(c context.Context, topic string, event AuthenticationRequired) error
	OnCheckoutCompleted(c context.Context, topic string, event CheckoutCompleted) error
	OnCheckoutAbandoned(c context.Context, topic string, event CheckoutAbandoned) error
	OnCheckoutFailed(c context.Context, topic string, event CheckoutFailed) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutStartedName:
		{
			event := CheckoutStarted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutStarted(c, envelope.Topic, event)
		}
	case authenticationRequiredName:
		{
			event := AuthenticationRequired{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnAuthenticationRequired(c, envelope.Topic, event)
		}
	case checkoutCompletedName:
		{
			event := CheckoutCompleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutCompleted(c, envelope.Topic, event)
		}
	case checkoutAbandonedName:
		{
			event := CheckoutAbandoned{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutAbandoned(c, envelope.Topic, event)
		}
	case checkoutFailedName:
		{
			event := CheckoutFailed{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutFailed(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %s", envelope.EventTypeName))
	}
}

type CheckoutStarted struct {
	BasketUID     string
	AmountInCents int64
	Currency      string
	ItemCount     int
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.BasketUID
}

type AuthenticationRequired struct {
	BasketUID        string
	PaymentIntentUID string
	AmountInCents    int64
	Currency         string
}

func (e AuthenticationRequired) GetEventTypeName() string {
	return authenticationRequiredName
}

func (e AuthenticationRequired) GetAggregateName() string {
	return e.BasketUID
}

type CheckoutCompleted struct {
	BasketUID     string
	OrderUID      string
	PaymentMethod string
	AmountInCents int64
	Currency      string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.BasketUID
}

type CheckoutAbandoned struct {
	BasketUID string
	Reason    string
}

func (e CheckoutAbandoned) GetEventTypeName() string {
	return checkoutAbandonedName
}

func (e CheckoutAbandoned) GetAggregateName() string {
	return e.BasketUID
}

type CheckoutFailed struct {
	BasketUID    string
	ErrorCode    string
	ErrorMessage string
}

func (e CheckoutFailed) GetEventTypeName() string {
	return checkoutFailedName
}

func (e CheckoutFailed) GetAggregateName() string {
	return e.BasketUID
}
