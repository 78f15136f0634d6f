package basketgw

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/coursekit/storefront/lib/myerrors"
	"github.com/coursekit/storefront/lib/myhttpclient"
	"github.com/coursekit/storefront/lib/mylog"
	"github.com/coursekit/storefront/services/basket"
	"github.com/coursekit/storefront/services/basketapi"
)

type Config struct {
	BaseURL    string
	APIKey     string
	SessionUID string
}

// Client implements basket.Gateway against the booking backend's basket API.
// The wire encoding is plain JSON; every mutating response carries the full
// resulting basket snapshot.
type Client struct {
	config Config
	sender myhttpclient.HTTPSender
	logger mylog.Logger
}

func NewClient(config Config, sender myhttpclient.HTTPSender, logger mylog.Logger) *Client {
	return &Client{
		config: config,
		sender: sender,
		logger: logger,
	}
}

type mutationResponse struct {
	Success   bool              `json:"success"`
	Basket    *basketapi.Basket `json:"basket"`
	Message   string            `json:"message"`
	ErrorCode string            `json:"errorCode"`
}

type addItemRequest struct {
	ItemUID         string `json:"itemUid"`
	ItemType        string `json:"itemType"`
	PayDeposit      bool   `json:"payDeposit"`
	AssignToUserUID string `json:"assignToUserUid,omitempty"`
	ChargeFromDate  string `json:"chargeFromDate,omitempty"`
}

func (g *Client) GetCurrentBasket(c context.Context) (*basketapi.Basket, error) {
	status, body, err := g.sender.Send(c, http.MethodGet, g.composeURL("/api/v1/basket", nil), nil)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching basket: http status %d", status))
	}

	basket := basketapi.Basket{}
	err = json.Unmarshal(body, &basket)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing basket response: %s", err))
	}

	return &basket, nil
}

func (g *Client) CreateBasket(c context.Context) (*basketapi.Basket, error) {
	status, body, err := g.sender.Send(c, http.MethodPost, g.composeURL("/api/v1/basket", nil), nil)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, myerrors.NewInternalError(fmt.Errorf("error creating basket: http status %d", status))
	}

	basket := basketapi.Basket{}
	err = json.Unmarshal(body, &basket)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing basket response: %s", err))
	}

	return &basket, nil
}

func (g *Client) AddItem(c context.Context, req basket.AddItemRequest) (basket.MutationResult, error) {
	wireReq := addItemRequest{
		ItemUID:         req.ItemUID,
		ItemType:        string(req.ItemType),
		PayDeposit:      req.PayDeposit,
		AssignToUserUID: req.AssignToUserUID,
	}
	if req.ChargeFromDate != nil {
		wireReq.ChargeFromDate = req.ChargeFromDate.Format("2006-01-02")
	}
	body, err := json.Marshal(wireReq)
	if err != nil {
		return basket.MutationResult{}, myerrors.NewInternalError(err)
	}

	return g.mutatingCall(c, http.MethodPost, "/api/v1/basket/items", nil, body)
}

func (g *Client) RemoveItem(c context.Context, itemUID string, itemType basketapi.ItemType) (basket.MutationResult, error) {
	return g.mutatingCall(c, http.MethodDelete, "/api/v1/basket/items/"+url.PathEscape(itemUID),
		url.Values{"type": []string{string(itemType)}}, nil)
}

func (g *Client) ApplyPromoCode(c context.Context, code string) (basket.MutationResult, error) {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return basket.MutationResult{}, myerrors.NewInternalError(err)
	}

	return g.mutatingCall(c, http.MethodPost, "/api/v1/basket/promo", nil, body)
}

func (g *Client) RemovePromoCode(c context.Context) (basket.MutationResult, error) {
	return g.mutatingCall(c, http.MethodDelete, "/api/v1/basket/promo", nil, nil)
}

func (g *Client) SetCreditUsage(c context.Context, useCredit bool) (basket.MutationResult, error) {
	body, err := json.Marshal(map[string]bool{"useCredit": useCredit})
	if err != nil {
		return basket.MutationResult{}, myerrors.NewInternalError(err)
	}

	return g.mutatingCall(c, http.MethodPut, "/api/v1/basket/credit", nil, body)
}

func (g *Client) DestroyBasket(c context.Context) (bool, error) {
	status, _, err := g.sender.Send(c, http.MethodDelete, g.composeURL("/api/v1/basket", nil), nil)
	if err != nil {
		return false, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return false, myerrors.NewInternalError(fmt.Errorf("error destroying basket: http status %d", status))
	}

	return true, nil
}

func (g *Client) mutatingCall(c context.Context, method string, path string, params url.Values, body []byte) (basket.MutationResult, error) {
	status, respBody, err := g.sender.Send(c, method, g.composeURL(path, params), body)
	if err != nil {
		return basket.MutationResult{}, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK {
		return basket.MutationResult{}, myerrors.NewInternalError(fmt.Errorf("error mutating basket: http status %d", status))
	}

	resp := mutationResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return basket.MutationResult{}, myerrors.NewInternalError(fmt.Errorf("error parsing mutation response: %s", err))
	}

	return basket.MutationResult{
		Success:   resp.Success,
		Basket:    resp.Basket,
		Message:   resp.Message,
		ErrorCode: resp.ErrorCode,
	}, nil
}

func (g *Client) composeURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("session", g.config.SessionUID)
	params.Set("key", g.config.APIKey)
	return fmt.Sprintf("%s%s?%s", g.config.BaseURL, path, params.Encode())
}
