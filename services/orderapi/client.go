package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/lib/myhttpclient"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/basketapi"
)

type Config struct {
	BaseURL    string
	APIKey     string
	SessionUID string
}

// HTTPClient implements Client against the booking backend's checkout API.
type HTTPClient struct {
	config Config
	sender myhttpclient.HTTPSender
	logger mylog.Logger
}

func NewHTTPClient(config Config, sender myhttpclient.HTTPSender, logger mylog.Logger) *HTTPClient {
	return &HTTPClient{
		config: config,
		sender: sender,
		logger: logger,
	}
}

type paymentMethodsResponse struct {
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

type createPaymentMethodRequest struct {
	Token          string            `json:"token"`
	BillingAddress basketapi.Address `json:"billingAddress"`
	SetDefault     bool              `json:"setDefault"`
}

type confirmPaymentRequest struct {
	PaymentIntentUID string `json:"paymentIntentUid"`
}

type confirmPaymentResponse struct {
	Success bool `json:"success"`
}

func (oc *HTTPClient) GetPaymentMethods(c context.Context) ([]PaymentMethod, error) {
	status, body, err := oc.sender.Send(c, http.MethodGet, oc.composeURL("/api/v1/payment-methods"), nil)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching payment methods: http status %d", status))
	}

	resp := paymentMethodsResponse{}
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing payment methods response: %s", err))
	}

	return resp.PaymentMethods, nil
}

func (oc *HTTPClient) CreatePaymentMethod(c context.Context, token string, billing basketapi.Address, setDefault bool) (*PaymentMethod, error) {
	body, err := json.Marshal(createPaymentMethodRequest{
		Token:          token,
		BillingAddress: billing,
		SetDefault:     setDefault,
	})
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	status, respBody, err := oc.sender.Send(c, http.MethodPost, oc.composeURL("/api/v1/payment-methods"), body)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, myerrors.NewInternalError(fmt.Errorf("error storing payment method: http status %d", status))
	}

	method := PaymentMethod{}
	err = json.Unmarshal(respBody, &method)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing payment method response: %s", err))
	}

	return &method, nil
}

func (oc *HTTPClient) PlaceOrder(c context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	status, respBody, err := oc.sender.Send(c, http.MethodPost, oc.composeURL("/api/v1/orders"), body)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	// Declines and challenges come back as a 200 with the verdict in the
	// payload; a non-200 means the service itself misbehaved.
	if status != http.StatusOK {
		return nil, myerrors.NewInternalError(fmt.Errorf("error placing order: http status %d", status))
	}

	result := PlaceOrderResult{}
	err = json.Unmarshal(respBody, &result)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing order response: %s", err))
	}

	return &result, nil
}

func (oc *HTTPClient) ConfirmAuthenticatedPayment(c context.Context, paymentIntentUID string) (bool, error) {
	body, err := json.Marshal(confirmPaymentRequest{PaymentIntentUID: paymentIntentUID})
	if err != nil {
		return false, myerrors.NewInternalError(err)
	}

	status, respBody, err := oc.sender.Send(c, http.MethodPost, oc.composeURL("/api/v1/orders/confirm"), body)
	if err != nil {
		return false, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK {
		return false, myerrors.NewInternalError(fmt.Errorf("error confirming payment: http status %d", status))
	}

	resp := confirmPaymentResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return false, myerrors.NewInternalError(fmt.Errorf("error parsing confirmation response: %s", err))
	}

	return resp.Success, nil
}

func (oc *HTTPClient) composeURL(path string) string {
	params := url.Values{}
	params.Set("session", oc.config.SessionUID)
	params.Set("key", oc.config.APIKey)
	return fmt.Sprintf("%s%s?%s", oc.config.BaseURL, path, params.Encode())
}
