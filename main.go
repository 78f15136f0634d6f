package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/coursekit/storefront/lib/myhttpclient"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/lib/mypublisher"
	"github.com/coursekit/storefront/lib/mypubsub"
	"github.com/coursekit/storefront/lib/myqueue"
	"github.com/coursekit/storefront/lib/mystore"
	"github.com/coursekit/storefront/lib/mytime"
	"github.com/coursekit/storefront/lib/myuuid"
	"github.com/coursekit/storefront/services/basket"
	"github.com/coursekit/storefront/services/basketgw"
	"github.com/coursekit/storefront/services/checkout"
	"github.com/coursekit/storefront/services/orderapi"
	"github.com/coursekit/storefront/services/payment"
	"github.com/coursekit/storefront/services/paymentadyen"
	"github.com/coursekit/storefront/services/paymentstripe"
	"github.com/coursekit/storefront/services/warmup"
)

func main() {
	c := context.Background()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()

	router := mux.NewRouter()
	publisher.RegisterEndpoints(c, router)

	sender := myhttpclient.New()
	sessionUID := getenvOrDefault("SHOPPER_SESSION_UID", uuider.Create())
	bookingBaseURL := getenvOrDefault("BOOKING_API_BASE_URL", "http://localhost:8888")
	bookingAPIKey := os.Getenv("BOOKING_API_KEY")

	gateway := basketgw.NewClient(basketgw.Config{
		BaseURL:    bookingBaseURL,
		APIKey:     bookingAPIKey,
		SessionUID: sessionUID,
	}, sender, mylog.New("basketgw"))

	basketStore := basket.NewStore(gateway, mylog.New("basket"))
	if ok, failure := basketStore.Initialize(c); !ok {
		log.Printf("Basket not available yet: %s", failure.Message)
	}
	basketWeb := basket.NewWebService(basketStore, mylog.New("basketweb"))
	basketWeb.RegisterEndpoints(c, router)

	basketEvents := basket.NewEventService(basketStore, pubsub)
	err = basketEvents.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error subscribing basket to checkout events: %s", err)
	}

	warmup.NewService(gateway).RegisterEndpoints(c, router)

	orderClient := orderapi.NewHTTPClient(orderapi.Config{
		BaseURL:    bookingBaseURL,
		APIKey:     bookingAPIKey,
		SessionUID: sessionUID,
	}, sender, mylog.New("orderapi"))

	processor, err := createProcessor()
	if err != nil {
		log.Fatalf("Error creating payment processor: %s", err)
	}

	checkoutStateStore, storeCleanup, err := mystore.New[checkout.State](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}
	defer storeCleanup()

	checkoutService := checkout.NewService(checkoutStateStore, orderClient, processor, publisher, nower)
	err = checkoutService.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating topics: %s", err)
	}
	checkoutWeb := checkout.NewWebService(checkoutService, basketStore, mylog.New("checkoutweb"))
	checkoutWeb.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func createProcessor() (payment.Processor, error) {
	provider := getenvOrDefault("PAYMENT_PROVIDER", "stripe")

	switch provider {
	case "stripe":
		apiKey := os.Getenv("STRIPE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("missing STRIPE_API_KEY")
		}
		return paymentstripe.NewProcessor(apiKey, paymentstripe.NewPayer()), nil

	case "adyen":
		cfg := paymentadyen.Config{
			Environment:     getenvOrDefault("ADYEN_ENVIRONMENT", "TEST"),
			APIKey:          os.Getenv("ADYEN_API_KEY"),
			MerchantAccount: os.Getenv("ADYEN_MERCHANT_ACCOUNT"),
		}
		if cfg.APIKey == "" || cfg.MerchantAccount == "" {
			return nil, fmt.Errorf("missing ADYEN_API_KEY or ADYEN_MERCHANT_ACCOUNT")
		}
		return paymentadyen.NewProcessor(cfg, paymentadyen.NewPayer(cfg.Environment, cfg.APIKey)), nil

	default:
		return nil, fmt.Errorf("unknown payment provider %q", provider)
	}
}

func getenvOrDefault(name string, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}

	return value
}

func startWebServerBlocking(router *mux.Router) {
	port := getenvOrDefault("PORT", "8080")

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
