package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/coursekit/storefront/lib/mycontext"
	"github.com/coursekit/storefront/lib/myhttp"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/basket"
)

type webService struct {
	logger  mylog.Logger
	gateway basket.Gateway
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(gateway basket.Gateway) *webService {
	logger := mylog.New("warmup")
	return &webService{
		logger:  logger,
		gateway: gateway,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage touches the booking backend so the first real request does not
// pay for connection setup.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, err := s.gateway.GetCurrentBasket(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
