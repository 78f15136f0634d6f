package basket

import (
	"context"
	"time"

	"github.com/coursekit/storefront/services/basketapi"
)

// AddItemRequest describes one offering to be added to the basket.
type AddItemRequest struct {
	ItemUID         string
	ItemType        basketapi.ItemType
	PayDeposit      bool
	AssignToUserUID string
	ChargeFromDate  *time.Time
}

// MutationResult is what the basket authority returns for every mutating
// call. On success Basket carries the full resulting snapshot, never a delta.
type MutationResult struct {
	Success   bool
	Basket    *basketapi.Basket
	Message   string
	ErrorCode string
}

// Gateway performs the remote read/write of basket state against the
// basket authority. The authority owns all pricing, availability and
// discount computation.
//
//go:generate mockgen -source=api.go -package basket -destination gateway_mock.go Gateway
type Gateway interface {
	GetCurrentBasket(c context.Context) (*basketapi.Basket, error)
	CreateBasket(c context.Context) (*basketapi.Basket, error)
	AddItem(c context.Context, req AddItemRequest) (MutationResult, error)
	RemoveItem(c context.Context, itemUID string, itemType basketapi.ItemType) (MutationResult, error)
	ApplyPromoCode(c context.Context, code string) (MutationResult, error)
	RemovePromoCode(c context.Context) (MutationResult, error)
	SetCreditUsage(c context.Context, useCredit bool) (MutationResult, error)
	DestroyBasket(c context.Context) (bool, error)
}
