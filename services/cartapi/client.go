package cartapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/myhttpclient"
)

type httpCartCaller struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewClient(baseURL string, sender myhttpclient.HTTPSender) CartCaller {
	return &httpCartCaller{
		baseURL: baseURL,
		sender:  sender,
	}
}

type addRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

func (cc httpCartCaller) Fetch(c context.Context, bearerToken string) ([]CartLine, error) {
	status, payload, err := cc.sender.Send(c, http.MethodGet, cc.baseURL+"/api/cart", nil, bearerToken)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK {
		return nil, errorFromResponse(status, payload)
	}

	lines := []CartLine{}
	err = json.Unmarshal(payload, &lines)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing cart response: %s", err))
	}

	return lines, nil
}

func (cc httpCartCaller) Add(c context.Context, bearerToken string, productUID string, quantity int) (CartLine, error) {
	body, err := json.Marshal(addRequest{ItemID: productUID, Quantity: quantity})
	if err != nil {
		return CartLine{}, myerrors.NewInternalError(fmt.Errorf("error composing add request: %s", err))
	}

	status, payload, err := cc.sender.Send(c, http.MethodPost, cc.baseURL+"/api/cart", body, bearerToken)
	if err != nil {
		return CartLine{}, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return CartLine{}, errorFromResponse(status, payload)
	}

	return parseLine(payload)
}

func (cc httpCartCaller) Update(c context.Context, bearerToken string, lineUID string, quantity int) (CartLine, error) {
	body, err := json.Marshal(updateRequest{Quantity: quantity})
	if err != nil {
		return CartLine{}, myerrors.NewInternalError(fmt.Errorf("error composing update request: %s", err))
	}

	status, payload, err := cc.sender.Send(c, http.MethodPut, fmt.Sprintf("%s/api/cart/%s", cc.baseURL, lineUID), body, bearerToken)
	if err != nil {
		return CartLine{}, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK {
		return CartLine{}, errorFromResponse(status, payload)
	}

	return parseLine(payload)
}

func (cc httpCartCaller) Remove(c context.Context, bearerToken string, lineUID string) error {
	status, payload, err := cc.sender.Send(c, http.MethodDelete, fmt.Sprintf("%s/api/cart/%s", cc.baseURL, lineUID), nil, bearerToken)
	if err != nil {
		return myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return errorFromResponse(status, payload)
	}

	return nil
}

func (cc httpCartCaller) Clear(c context.Context, bearerToken string) error {
	status, payload, err := cc.sender.Send(c, http.MethodPost, cc.baseURL+"/api/cart/clear", []byte("{}"), bearerToken)
	if err != nil {
		return myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return errorFromResponse(status, payload)
	}

	return nil
}

func parseLine(payload []byte) (CartLine, error) {
	line := CartLine{}
	err := json.Unmarshal(payload, &line)
	if err != nil {
		return CartLine{}, myerrors.NewInternalError(fmt.Errorf("error parsing cart-line response: %s", err))
	}
	return line, nil
}

func errorFromResponse(status int, payload []byte) error {
	resp := struct {
		Message string `json:"message"`
	}{}
	// A parse failure just means there is no server-provided message
	_ = json.Unmarshal(payload, &resp)

	return RemoteError{
		StatusCode: status,
		Message:    resp.Message,
	}
}
