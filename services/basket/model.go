package basket

import "github.com/coursekit/storefront/services/basketapi"

type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseLoading       Phase = "loading"
	PhaseReady         Phase = "ready"
	PhaseFailed        Phase = "failed"
)

// Failure carries the machine-readable code plus the human-readable message
// as supplied by the basket authority. The client never invents its own
// wording, it only passes the authority's through.
type Failure struct {
	Code    string
	Message string
}

const (
	FailureCodeGateway       = "gateway_error"
	FailureCodeRejected      = "rejected"
	FailureCodeInvalidBasket = "invalid_basket"
	FailureCodeBusy          = "busy"
)

// State is the observable condition of the basket store. On failure the last
// known-good basket is retained so the caller can keep showing it alongside
// an error banner.
type State struct {
	Phase  Phase
	Basket *basketapi.Basket
	Err    *Failure
}

func (s State) IsEmpty() bool {
	return s.Basket == nil || s.Basket.IsEmpty()
}

func (s State) ItemCount() int {
	if s.Basket == nil {
		return 0
	}
	return s.Basket.ItemCount()
}

func (s State) Total() int64 {
	if s.Basket == nil {
		return 0
	}
	return s.Basket.Total
}
