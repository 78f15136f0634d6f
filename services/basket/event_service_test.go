package basket

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/coursekit/storefront/lib/myevents"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/lib/mypubsub"
	"github.com/coursekit/storefront/services/basketapi"
	"github.com/coursekit/storefront/services/checkoutevents"
)

func setupEvents(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *Store, *MockGateway) {
	c := context.TODO()
	gateway := NewMockGateway(ctrl)
	store := NewStore(gateway, mylog.New("basket"))

	subscriber := mypubsub.NewMockPubSub(ctrl)
	subscriber.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)
	subscriber.EXPECT().Subscribe(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil)

	sut := NewEventService(store, subscriber)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, store, gateway
}

func pushRequestBody(t *testing.T, event myevents.Event) *bytes.Buffer {
	t.Helper()

	payload, err := json.Marshal(event)
	assert.NoError(t, err)
	envelope, err := json.Marshal(myevents.EventEnvelope{
		Topic:         checkoutevents.TopicName,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	})
	assert.NoError(t, err)
	body, err := json.Marshal(myevents.PushRequest{Message: myevents.PushMessage{Data: envelope}})
	assert.NoError(t, err)

	return bytes.NewBuffer(body)
}

func TestCheckoutEventWebhook(t *testing.T) {
	t.Run("Completed checkout clears the paid-for basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, store, gateway := setupEvents(t, ctrl)

		// given: the session holds the basket the checkout paid for
		gateway.EXPECT().GetCurrentBasket(gomock.Any()).Return(exampleBasket("123"), nil)
		store.Initialize(c)
		gateway.EXPECT().DestroyBasket(gomock.Any()).Return(true, nil)
		gateway.EXPECT().CreateBasket(gomock.Any()).Return(&basketapi.Basket{UID: "456", Currency: "GBP"}, nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/basket/event", pushRequestBody(t, checkoutevents.CheckoutCompleted{
			BasketUID:     "123",
			OrderUID:      "order_1",
			PaymentMethod: "card",
			AmountInCents: 5000,
			Currency:      "GBP",
		}))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then: the store swapped to a fresh empty basket
		assert.Equal(t, 200, response.Code)
		state := store.Current()
		assert.Equal(t, PhaseReady, state.Phase)
		assert.Equal(t, "456", state.Basket.UID)
		assert.True(t, state.IsEmpty())
	})

	t.Run("Completion of a basket no longer held is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, store, gateway := setupEvents(t, ctrl)

		// given: no expectations beyond the initial fetch
		gateway.EXPECT().GetCurrentBasket(gomock.Any()).Return(exampleBasket("123"), nil)
		store.Initialize(c)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/basket/event", pushRequestBody(t, checkoutevents.CheckoutCompleted{
			BasketUID: "someone_elses_basket",
			OrderUID:  "order_2",
		}))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "123", store.Current().Basket.UID)
	})

	t.Run("Failed checkout leaves the basket untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, store, gateway := setupEvents(t, ctrl)

		// given
		gateway.EXPECT().GetCurrentBasket(gomock.Any()).Return(exampleBasket("123"), nil)
		store.Initialize(c)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/basket/event", pushRequestBody(t, checkoutevents.CheckoutFailed{
			BasketUID:    "123",
			ErrorCode:    "card_declined",
			ErrorMessage: "Your card was declined",
		}))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "123", store.Current().Basket.UID)
		assert.False(t, store.Current().IsEmpty())
	})

	t.Run("Malformed push request is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setupEvents(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/basket/event", bytes.NewBufferString("not json"))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})
}
