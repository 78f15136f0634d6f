package basket

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/coursekit/storefront/lib/mycontext"
	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/lib/myhttp"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/basketapi"
)

// webService is the thin adapter through which presentation code drives the
// basket store. It does no rendering of its own.
type webService struct {
	logger mylog.Logger
	store  *Store
}

func NewWebService(store *Store, logger mylog.Logger) *webService {
	return &webService{
		logger: logger,
		store:  store,
	}
}

// OperationResponse reports the outcome of one basket operation plus the
// state the store ended up in.
type OperationResponse struct {
	Ok      bool
	Code    string `json:",omitempty"`
	Message string `json:",omitempty"`
	State   State
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/basket", s.currentStatePage()).Methods("GET")
	router.HandleFunc("/api/basket", s.clearPage()).Methods("DELETE")
	router.HandleFunc("/api/basket/refresh", s.refreshPage()).Methods("POST")
	router.HandleFunc("/api/basket/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/basket/items/{itemUID}", s.removeItemPage()).Methods("DELETE")
	router.HandleFunc("/api/basket/promo", s.applyPromoCodePage()).Methods("POST")
	router.HandleFunc("/api/basket/promo", s.removePromoCodePage()).Methods("DELETE")
	router.HandleFunc("/api/basket/credit", s.setCreditUsagePage()).Methods("PUT")
}

func (s *webService) currentStatePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		writer.Write(c, w, http.StatusOK, s.store.Current())
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		form, err := basketapi.NewAddItemFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		chargeFrom, err := form.ChargeFrom()
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		ok, failure := s.store.AddItem(c, AddItemRequest{
			ItemUID:         form.ItemUID,
			ItemType:        basketapi.ItemType(form.ItemType),
			PayDeposit:      form.PayDeposit,
			AssignToUserUID: form.AssignToUserUID,
			ChargeFromDate:  chargeFrom,
		})

		s.writeOutcome(c, w, writer, ok, failure)
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		itemUID := mux.Vars(r)["itemUID"]
		itemType := basketapi.ItemType(r.URL.Query().Get("type"))

		ok, failure := s.store.RemoveItem(c, itemUID, itemType)

		s.writeOutcome(c, w, writer, ok, failure)
	}
}

func (s *webService) applyPromoCodePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			writer.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}
		code := r.Form.Get("code")
		if code == "" {
			writer.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing promo code"))
			return
		}

		ok, failure := s.store.ApplyPromoCode(c, code)

		s.writeOutcome(c, w, writer, ok, failure)
	}
}

func (s *webService) removePromoCodePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		ok, failure := s.store.RemovePromoCode(c)

		s.writeOutcome(c, w, writer, ok, failure)
	}
}

func (s *webService) setCreditUsagePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			writer.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}
		useCredit := r.Form.Get("useCredit") == "true"

		ok, failure := s.store.SetCreditUsage(c, useCredit)

		s.writeOutcome(c, w, writer, ok, failure)
	}
}

func (s *webService) refreshPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		ok, failure := s.store.Refresh(c)

		s.writeOutcome(c, w, writer, ok, failure)
	}
}

func (s *webService) clearPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		ok, failure := s.store.Clear(c)

		s.writeOutcome(c, w, writer, ok, failure)
	}
}

func (s *webService) writeOutcome(c context.Context, w http.ResponseWriter, writer myhttp.ResponseWriter, ok bool, failure Failure) {
	if !ok && failure.Code == FailureCodeBusy {
		writer.WriteError(c, w, 1, myerrors.NewConflictError(errBusy))
		return
	}

	writer.Write(c, w, http.StatusOK, OperationResponse{
		Ok:      ok,
		Code:    failure.Code,
		Message: failure.Message,
		State:   s.store.Current(),
	})
}
