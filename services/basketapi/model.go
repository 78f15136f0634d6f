package basketapi

import (
	"fmt"
	"time"
)

// ItemType identifies what kind of offering a basket line refers to.
type ItemType string

const (
	ItemTypeCourse  ItemType = "course"
	ItemTypeTaster  ItemType = "taster"
	ItemTypeCredits ItemType = "credits"
)

// Basket is the server-authoritative view of what the user is about to buy.
// All amounts are in minor-currency units (pence, cents). The client never
// recomputes totals: every successful mutation replaces the basket wholesale
// with the snapshot returned by the basket authority.
type Basket struct {
	UID         string
	SessionUID  string
	UserUID     string
	Currency    string
	Items       []Item
	CreditItems []CreditItem
	FeeItems    []FeeItem

	SubTotal          int64
	DiscountTotal     int64
	PromoCode         string
	PromoCodeDiscount int64
	CreditTotal       int64
	Tax               int64
	Total             int64
	ChargeTotal       int64
	PayLater          int64

	CreatedAt time.Time
	UpdatedAt *time.Time
	ExpiresAt *time.Time
}

// Item is one bookable unit in the basket. Items are never mutated in
// place: add/remove operations always yield a full new basket.
type Item struct {
	UID             string
	OfferingUID     string
	ItemType        ItemType
	Description     string
	UnitPrice       int64
	Discount        int64
	TotalPrice      int64
	IsTaster        bool
	SessionUID      string
	AssignedUserUID string
	PayDeposit      bool
	ChargeFromDate  *time.Time
	AddedAt         time.Time
}

type CreditItem struct {
	UID         string
	Description string
	Amount      int64
}

type FeeItem struct {
	UID         string
	Description string
	Amount      int64
}

type Address struct {
	Street            string `form:"street" json:"street"`
	HouseNumberOrName string `form:"houseNumber" json:"houseNumberOrName"`
	PostalCode        string `form:"postalCode" json:"postalCode"`
	City              string `form:"city" json:"city"`
	StateOrProvince   string `form:"state" json:"stateOrProvince"`
	Country           string `form:"country" json:"country"`
}

func (b Basket) IsEmpty() bool {
	return len(b.Items) == 0
}

func (b Basket) ItemCount() int {
	return len(b.Items)
}

// CheckTotals verifies the arithmetic the basket authority promises to uphold.
func (b Basket) CheckTotals() error {
	if b.Total != b.SubTotal-b.DiscountTotal-b.PromoCodeDiscount-b.CreditTotal+b.Tax {
		return fmt.Errorf("basket %s: total %d does not match subtotal %d - discount %d - promo %d - credit %d + tax %d",
			b.UID, b.Total, b.SubTotal, b.DiscountTotal, b.PromoCodeDiscount, b.CreditTotal, b.Tax)
	}
	if b.Total != b.ChargeTotal+b.PayLater {
		return fmt.Errorf("basket %s: total %d does not match charge-now %d + pay-later %d",
			b.UID, b.Total, b.ChargeTotal, b.PayLater)
	}
	return nil
}

func (b Basket) TotalFormatted() string {
	return fmt.Sprintf("%.2f %s", float64(b.Total)/100.0, b.Currency)
}
