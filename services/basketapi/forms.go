package basketapi

import (
	"net/http"
	"net/url"
	"time"

	formcodec "github.com/go-playground/form/v4"

	"github.com/coursekit/storefront/lib/myerrors"
)

// AddItemForm is what presentation code posts when the user picks an offering.
type AddItemForm struct {
	ItemUID         string `form:"itemUid"`
	ItemType        string `form:"itemType"`
	PayDeposit      bool   `form:"payDeposit"`
	AssignToUserUID string `form:"assignToUserUid"`
	ChargeFromDate  string `form:"chargeFromDate"` // RFC 3339 date, optional
}

func NewAddItemFromRequest(r *http.Request) (AddItemForm, error) {
	err := r.ParseForm()
	if err != nil {
		return AddItemForm{}, myerrors.NewInvalidInputError(err)
	}
	return newAddItemFromValues(r.Form)
}

func newAddItemFromValues(values url.Values) (AddItemForm, error) {
	form := AddItemForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}
	if form.ItemUID == "" || form.ItemType == "" {
		return form, myerrors.NewInvalidInputErrorf("missing mandatory field")
	}

	return form, nil
}

func (f AddItemForm) ChargeFrom() (*time.Time, error) {
	if f.ChargeFromDate == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", f.ChargeFromDate)
	if err != nil {
		return nil, myerrors.NewInvalidInputErrorf("error parsing chargeFromDate: %s", err)
	}
	return &t, nil
}
