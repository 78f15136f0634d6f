package orderapi

import (
	"context"
	"time"

	"github.com/coursekit/storefront/services/basketapi"
)

// PaymentMethod is a tokenized card reference. It never carries raw card
// data: the number and cvc live only inside the payment-provider vault.
type PaymentMethod struct {
	UID         string `json:"uid"`
	Brand       string `json:"brand"`
	Last4       string `json:"last4"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	IsDefault   bool   `json:"isDefault"`
}

// Order is created server-side on a successful submission and is immutable
// from this service's perspective afterwards.
type Order struct {
	UID        string      `json:"uid"`
	Status     string      `json:"status"`
	Currency   string      `json:"currency"`
	Lines      []OrderLine `json:"lines"`
	SubTotal   int64       `json:"subTotal"`
	Tax        int64       `json:"tax"`
	Total      int64       `json:"total"`
	CreatedAt  time.Time   `json:"createdAt"`
	CustomerID string      `json:"customerUid"`
}

type OrderLine struct {
	UID         string `json:"uid"`
	OfferingUID string `json:"offeringUid"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	TotalPrice  int64  `json:"totalPrice"`
}

// LineItemInfo carries per-item payment scheduling preferences along with
// the order submission.
type LineItemInfo struct {
	BasketItemUID  string `json:"basketItemUid"`
	PayDeposit     bool   `json:"payDeposit"`
	ChargeFromDate string `json:"chargeFromDate,omitempty"`
}

type PlaceOrderRequest struct {
	Basket            basketapi.Basket   `json:"basket"`
	PaymentMethodUID  string             `json:"paymentMethodUid,omitempty"`
	PaymentMethodType string             `json:"paymentMethodType"`
	BillingAddress    *basketapi.Address `json:"billingAddress,omitempty"`
	LineItemInfo      []LineItemInfo     `json:"lineItemInfo,omitempty"`
}

// PlaceOrderResult is the tri-state outcome of an order submission: a
// completed order, a step-up-authentication challenge (client secret), or
// a failure described by ErrorCode and ErrorMessage.
type PlaceOrderResult struct {
	Success          bool   `json:"success"`
	Order            *Order `json:"order,omitempty"`
	ClientSecret     string `json:"clientSecret,omitempty"`
	NextAction       string `json:"nextAction,omitempty"`
	PaymentIntentUID string `json:"paymentIntentUid,omitempty"`
	ErrorMessage     string `json:"error,omitempty"`
	ErrorCode        string `json:"errorCode,omitempty"`
}

// RequiresAction tells whether the server answered with a 3DS challenge
// instead of a final verdict.
func (r PlaceOrderResult) RequiresAction() bool {
	return !r.Success && r.ClientSecret != ""
}

//go:generate mockgen -source=api.go -package orderapi -destination client_mock.go Client

// Client talks to the remote order-submission service. Deduplication of
// repeated submissions for the same basket is the server's concern.
type Client interface {
	GetPaymentMethods(c context.Context) ([]PaymentMethod, error)
	CreatePaymentMethod(c context.Context, token string, billing basketapi.Address, setDefault bool) (*PaymentMethod, error)
	PlaceOrder(c context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error)
	ConfirmAuthenticatedPayment(c context.Context, paymentIntentUID string) (bool, error)
}
