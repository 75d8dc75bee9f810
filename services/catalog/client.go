package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/myhttpclient"
	"github.com/quickbite/storefront/services/cartapi"
)

type httpCatalogCaller struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewClient(baseURL string, sender myhttpclient.HTTPSender) CatalogCaller {
	return &httpCatalogCaller{
		baseURL: baseURL,
		sender:  sender,
	}
}

type menuResponse struct {
	Items []cartapi.Product `json:"items"`
}

func (cc httpCatalogCaller) FetchMenu(c context.Context) ([]cartapi.Product, error) {
	status, payload, err := cc.sender.Send(c, http.MethodGet, cc.baseURL+"/api/items", nil, "")
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	if status != http.StatusOK {
		return nil, myerrors.NewInternalError(fmt.Errorf("menu feed returned status %d", status))
	}

	resp := menuResponse{}
	err = json.Unmarshal(payload, &resp)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing menu response: %s", err))
	}

	return resp.Items, nil
}
