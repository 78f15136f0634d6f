package basket

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/coursekit/storefront/lib/mycontext"
	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/lib/myhttp"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/lib/mypubsub"
	"github.com/coursekit/storefront/services/checkoutevents"
)

// eventService reacts to checkout lifecycle events. Once a checkout has
// completed, the paid-for basket is replaced with a fresh empty one.
type eventService struct {
	store      *Store
	subscriber mypubsub.PubSub
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewEventService(store *Store, subscriber mypubsub.PubSub) *eventService {
	return &eventService{
		store:      store,
		subscriber: subscriber,
		logger:     mylog.New("basketevents"),
	}
}

func (s *eventService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/basket/event", s.eventPage()).Methods("POST")

	return s.Subscribe(c)
}

func (s *eventService) Subscribe(c context.Context) error {
	err := s.subscriber.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, checkoutevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/basket/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

func (s *eventService) eventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := checkoutevents.DispatchEvent(c, r.Body, s)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func (s *eventService) OnCheckoutStarted(c context.Context, topic string, event checkoutevents.CheckoutStarted) error {
	return nil
}

func (s *eventService) OnAuthenticationRequired(c context.Context, topic string, event checkoutevents.AuthenticationRequired) error {
	return nil
}

// OnCheckoutCompleted replaces the paid-for basket with a fresh one. Must be
// idempotent: a redelivered event clears an already-empty basket.
func (s *eventService) OnCheckoutCompleted(c context.Context, topic string, event checkoutevents.CheckoutCompleted) error {
	s.logger.Log(c, event.BasketUID, mylog.SeverityInfo, "Webhook: checkout for basket %s completed with order %s", event.BasketUID, event.OrderUID)

	current := s.store.Current()
	if current.Basket == nil || current.Basket.UID != event.BasketUID {
		// completion of a basket this session no longer holds
		return nil
	}

	ok, failure := s.store.Clear(c)
	if !ok {
		return myerrors.NewInternalError(fmt.Errorf("error clearing basket %s: %s", event.BasketUID, failure.Message))
	}

	return nil
}

func (s *eventService) OnCheckoutAbandoned(c context.Context, topic string, event checkoutevents.CheckoutAbandoned) error {
	s.logger.Log(c, event.BasketUID, mylog.SeverityInfo, "Webhook: checkout for basket %s abandoned (%s)", event.BasketUID, event.Reason)
	return nil
}

func (s *eventService) OnCheckoutFailed(c context.Context, topic string, event checkoutevents.CheckoutFailed) error {
	s.logger.Log(c, event.BasketUID, mylog.SeverityWarn, "Webhook: checkout for basket %s failed: %s (%s)", event.BasketUID, event.ErrorMessage, event.ErrorCode)
	return nil
}
