package checkout

import (
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/services/basketapi"
	"github.com/coursekit/storefront/services/payment"
)

// NewCardForm is what presentation code posts when the shopper enters a new
// card. The raw card fields are handed straight to the processor for
// tokenization and are never persisted.
type NewCardForm struct {
	CardNumber   string `form:"cardNumber"`
	ExpiryMonth  string `form:"expiryMonth"`
	ExpiryYear   string `form:"expiryYear"`
	CVC          string `form:"cvc"`
	Email        string `form:"email"`
	Name         string `form:"name"`
	SetAsDefault bool   `form:"setAsDefault"`

	basketapi.Address
}

func NewCardFromRequest(r *http.Request) (NewCardForm, error) {
	err := r.ParseForm()
	if err != nil {
		return NewCardForm{}, myerrors.NewInvalidInputError(err)
	}
	return newCardFromValues(r.Form)
}

func newCardFromValues(values url.Values) (NewCardForm, error) {
	form := NewCardForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}
	if form.CardNumber == "" || form.ExpiryMonth == "" || form.ExpiryYear == "" || form.CVC == "" {
		return form, myerrors.NewInvalidInputErrorf("missing mandatory field")
	}

	return form, nil
}

func (f NewCardForm) toRequest() NewCardRequest {
	return NewCardRequest{
		Card: payment.CardDetails{
			Number:      f.CardNumber,
			ExpiryMonth: f.ExpiryMonth,
			ExpiryYear:  f.ExpiryYear,
			CVC:         f.CVC,
		},
		Email:          f.Email,
		Name:           f.Name,
		BillingAddress: f.Address,
		SetAsDefault:   f.SetAsDefault,
	}
}

type ProcessPaymentForm struct {
	PaymentMethodUID  string `form:"paymentMethodUid"`
	PaymentMethodType string `form:"paymentMethodType"`
}

func NewProcessPaymentFromRequest(r *http.Request) (ProcessPaymentForm, error) {
	err := r.ParseForm()
	if err != nil {
		return ProcessPaymentForm{}, myerrors.NewInvalidInputError(err)
	}

	form := ProcessPaymentForm{}
	err = formcodec.NewDecoder().Decode(&form, r.Form)
	if err != nil {
		return form, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}
	if form.PaymentMethodType == "" {
		form.PaymentMethodType = "card"
	}

	return form, nil
}

func NewBillingAddressFromRequest(r *http.Request) (basketapi.Address, error) {
	err := r.ParseForm()
	if err != nil {
		return basketapi.Address{}, myerrors.NewInvalidInputError(err)
	}

	address := basketapi.Address{}
	err = formcodec.NewDecoder().Decode(&address, r.Form)
	if err != nil {
		return address, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}

	return address, nil
}
