package checkout

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/coursekit/storefront/lib/mycontext"
	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/lib/myhttp"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/basket"
)

// webService is the thin adapter through which presentation code drives a
// checkout. It reads the basket store exactly once, at initialization, so
// the session works on a stable snapshot.
type webService struct {
	logger      mylog.Logger
	service     *Service
	basketStore *basket.Store
}

func NewWebService(service *Service, basketStore *basket.Store, logger mylog.Logger) *webService {
	return &webService{
		logger:      logger,
		service:     service,
		basketStore: basketStore,
	}
}

// CheckoutResponse is the outcome of one checkout operation.
// RequiresAuthentication is only set by the payment endpoint, to tell the
// caller a step-up leg is still pending.
type CheckoutResponse struct {
	State                  State
	RequiresAuthentication bool `json:",omitempty"`
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/checkout", s.startPage()).Methods("POST")
	router.HandleFunc("/api/checkout/{basketUID}", s.resumePage()).Methods("GET")
	router.HandleFunc("/api/checkout/{basketUID}", s.resetPage()).Methods("DELETE")
	router.HandleFunc("/api/checkout/{basketUID}/next", s.nextStepPage()).Methods("POST")
	router.HandleFunc("/api/checkout/{basketUID}/previous", s.previousStepPage()).Methods("POST")
	router.HandleFunc("/api/checkout/{basketUID}/payment-method", s.selectPaymentMethodPage()).Methods("PUT")
	router.HandleFunc("/api/checkout/{basketUID}/billing-address", s.billingAddressPage()).Methods("PUT")
	router.HandleFunc("/api/checkout/{basketUID}/cards", s.newCardPage()).Methods("POST")
	router.HandleFunc("/api/checkout/{basketUID}/payment", s.paymentPage()).Methods("POST")
	router.HandleFunc("/api/checkout/{basketUID}/authentication", s.authenticationPage()).Methods("POST")
	router.HandleFunc("/api/checkout/{basketUID}/payment-methods/refresh", s.refreshPaymentMethodsPage()).Methods("POST")
}

func (s *webService) startPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		basketState := s.basketStore.Current()
		if basketState.Basket == nil {
			writer.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("no basket to check out"))
			return
		}

		state, err := s.service.InitializeCheckout(c, *basketState.Basket)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) resumePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		state, err := s.service.ResumeCheckout(c, mux.Vars(r)["basketUID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) resetPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		state, err := s.service.Reset(c, mux.Vars(r)["basketUID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) nextStepPage() http.HandlerFunc {
	return s.stepPage(s.service.NextStep)
}

func (s *webService) previousStepPage() http.HandlerFunc {
	return s.stepPage(s.service.PreviousStep)
}

func (s *webService) stepPage(step func(c context.Context, basketUID string) (State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		state, err := step(c, mux.Vars(r)["basketUID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) selectPaymentMethodPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			writer.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}
		methodUID := r.Form.Get("paymentMethodUid")
		if methodUID == "" {
			writer.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing paymentMethodUid"))
			return
		}

		state, err := s.service.SelectPaymentMethod(c, mux.Vars(r)["basketUID"], methodUID)
		if err != nil {
			writer.WriteError(c, w, 3, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) billingAddressPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		address, err := NewBillingAddressFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		state, err := s.service.UpdateBillingAddress(c, mux.Vars(r)["basketUID"], address)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) newCardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		form, err := NewCardFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		state, err := s.service.CreatePaymentMethodFromCard(c, mux.Vars(r)["basketUID"], form.toRequest())
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) paymentPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		form, err := NewProcessPaymentFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		state, requiresAuth, err := s.service.ProcessPayment(c, mux.Vars(r)["basketUID"], ProcessPaymentRequest{
			PaymentMethodUID:  form.PaymentMethodUID,
			PaymentMethodType: form.PaymentMethodType,
		})
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{
			State:                  state,
			RequiresAuthentication: requiresAuth,
		})
	}
}

func (s *webService) authenticationPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			writer.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}
		clientSecret := r.Form.Get("clientSecret")
		if clientSecret == "" {
			writer.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing clientSecret"))
			return
		}

		state, err := s.service.Handle3DSAuthentication(c, mux.Vars(r)["basketUID"], clientSecret)
		if err != nil {
			writer.WriteError(c, w, 3, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}

func (s *webService) refreshPaymentMethodsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		state, err := s.service.RefreshPaymentMethods(c, mux.Vars(r)["basketUID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, CheckoutResponse{State: state})
	}
}
