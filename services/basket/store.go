package basket

import (
	"context"
	"errors"
	"sync"

	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/basketapi"
)

// Store is the single source of truth for "what is the user about to buy".
// It proxies every mutation to the basket authority and replaces its basket
// wholesale with each authoritative response.
//
// At most one mutating call is in flight at any time: a second mutation
// arriving while one is outstanding is rejected with a busy failure, because
// the authority applies mutations in arrival order and overlapping calls
// could silently revert user intent.
type Store struct {
	gateway Gateway
	logger  mylog.Logger

	mutex       sync.Mutex
	busy        bool
	state       State
	subscribers map[int]func(State)
	nextSubID   int
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewStore(gateway Gateway, logger mylog.Logger) *Store {
	return &Store{
		gateway: gateway,
		logger:  logger,
		state: State{
			Phase: PhaseUninitialized,
		},
		subscribers: map[int]func(State){},
	}
}

// Current returns the state snapshot as of now.
func (s *Store) Current() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.state
}

// Subscribe registers a listener that is invoked after every state
// transition. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		delete(s.subscribers, id)
	}
}

// Initialize fetches the user's existing remote basket or, when none exists,
// creates a fresh one.
func (s *Store) Initialize(c context.Context) (bool, Failure) {
	return s.fetchOrCreate(c, "initialize")
}

// Refresh re-reads the authoritative basket.
func (s *Store) Refresh(c context.Context) (bool, Failure) {
	return s.fetchOrCreate(c, "refresh")
}

func (s *Store) AddItem(c context.Context, req AddItemRequest) (bool, Failure) {
	return s.mutate(c, "add-item", func(c context.Context) (MutationResult, error) {
		return s.gateway.AddItem(c, req)
	})
}

// RemoveItem is idempotent from the caller's perspective: removing an item
// that is no longer present is not an error, the authority decides truth.
func (s *Store) RemoveItem(c context.Context, itemUID string, itemType basketapi.ItemType) (bool, Failure) {
	return s.mutate(c, "remove-item", func(c context.Context) (MutationResult, error) {
		return s.gateway.RemoveItem(c, itemUID, itemType)
	})
}

func (s *Store) ApplyPromoCode(c context.Context, code string) (bool, Failure) {
	return s.mutate(c, "apply-promo", func(c context.Context) (MutationResult, error) {
		return s.gateway.ApplyPromoCode(c, code)
	})
}

func (s *Store) RemovePromoCode(c context.Context) (bool, Failure) {
	return s.mutate(c, "remove-promo", func(c context.Context) (MutationResult, error) {
		return s.gateway.RemovePromoCode(c)
	})
}

func (s *Store) SetCreditUsage(c context.Context, useCredit bool) (bool, Failure) {
	return s.mutate(c, "set-credit-usage", func(c context.Context) (MutationResult, error) {
		return s.gateway.SetCreditUsage(c, useCredit)
	})
}

// Clear destroys the remote basket and atomically replaces it with a fresh
// empty one, so the store never observes a "no basket" gap.
func (s *Store) Clear(c context.Context) (bool, Failure) {
	if !s.beginMutation() {
		return false, busyFailure
	}
	defer s.endMutation()

	s.setLoading()

	s.logger.Log(c, s.basketUID(), mylog.SeverityInfo, "Clearing basket")

	destroyed, err := s.gateway.DestroyBasket(c)
	if err != nil {
		return s.setGatewayFailure(err)
	}
	if !destroyed {
		return s.setFailure(Failure{Code: FailureCodeRejected, Message: "basket could not be destroyed"})
	}

	fresh, err := s.gateway.CreateBasket(c)
	if err != nil {
		return s.setGatewayFailure(err)
	}

	return s.setReady(fresh)
}

const busyMessage = "another basket update is still in progress"

var busyFailure = Failure{Code: FailureCodeBusy, Message: busyMessage}

var errBusy = errors.New(busyMessage)

func (s *Store) fetchOrCreate(c context.Context, operation string) (bool, Failure) {
	if !s.beginMutation() {
		return false, busyFailure
	}
	defer s.endMutation()

	s.setLoading()

	s.logger.Log(c, s.basketUID(), mylog.SeverityInfo, "Fetching basket (%s)", operation)

	existing, err := s.gateway.GetCurrentBasket(c)
	if err != nil {
		return s.setGatewayFailure(err)
	}
	if existing != nil {
		return s.setReady(existing)
	}

	fresh, err := s.gateway.CreateBasket(c)
	if err != nil {
		return s.setGatewayFailure(err)
	}

	return s.setReady(fresh)
}

func (s *Store) mutate(c context.Context, operation string, call func(c context.Context) (MutationResult, error)) (bool, Failure) {
	if !s.beginMutation() {
		return false, busyFailure
	}
	defer s.endMutation()

	s.setLoading()

	s.logger.Log(c, s.basketUID(), mylog.SeverityInfo, "Basket mutation %s", operation)

	result, err := call(c)
	if err != nil {
		return s.setGatewayFailure(err)
	}

	if !result.Success {
		code := result.ErrorCode
		if code == "" {
			code = FailureCodeRejected
		}
		return s.setFailure(Failure{Code: code, Message: result.Message})
	}

	return s.setReady(result.Basket)
}

func (s *Store) beginMutation() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Store) endMutation() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.busy = false
}

func (s *Store) basketUID() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state.Basket == nil {
		return ""
	}
	return s.state.Basket.UID
}

func (s *Store) setLoading() {
	s.transition(func(state *State) {
		state.Phase = PhaseLoading
		state.Err = nil
	})
}

func (s *Store) setReady(basket *basketapi.Basket) (bool, Failure) {
	if basket == nil {
		return s.setFailure(Failure{Code: FailureCodeInvalidBasket, Message: "authority returned no basket"})
	}
	if err := basket.CheckTotals(); err != nil {
		return s.setFailure(Failure{Code: FailureCodeInvalidBasket, Message: err.Error()})
	}

	snapshot := *basket
	s.transition(func(state *State) {
		state.Phase = PhaseReady
		state.Basket = &snapshot
		state.Err = nil
	})
	return true, Failure{}
}

func (s *Store) setGatewayFailure(err error) (bool, Failure) {
	return s.setFailure(Failure{Code: FailureCodeGateway, Message: err.Error()})
}

// setFailure records the failure but retains the last known-good basket.
func (s *Store) setFailure(failure Failure) (bool, Failure) {
	s.transition(func(state *State) {
		state.Phase = PhaseFailed
		state.Err = &failure
	})
	return false, failure
}

func (s *Store) transition(apply func(state *State)) {
	s.mutex.Lock()
	apply(&s.state)
	snapshot := s.state
	listeners := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mutex.Unlock()

	// notify without holding the lock
	for _, fn := range listeners {
		fn(snapshot)
	}
}
