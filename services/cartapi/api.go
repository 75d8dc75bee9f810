package cartapi

import (
	"context"
	"fmt"
)

// Product is a catalog item as served by the remote backend.
type Product struct {
	UID      string `json:"_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CartLine is one row in the remote cart. Product is nil when the referenced
// catalog item no longer exists.
type CartLine struct {
	UID      string   `json:"_id"`
	Product  *Product `json:"item"`
	Quantity int      `json:"quantity"`
}

//go:generate mockgen -source=api.go -package cartapi -destination caller_mock.go CartCaller
type CartCaller interface {
	Fetch(c context.Context, bearerToken string) ([]CartLine, error)
	Add(c context.Context, bearerToken string, productUID string, quantity int) (CartLine, error)
	Update(c context.Context, bearerToken string, lineUID string, quantity int) (CartLine, error)
	Remove(c context.Context, bearerToken string, lineUID string) error
	Clear(c context.Context, bearerToken string) error
}

// RemoteError carries the message the backend attached to a non-2xx response.
// It satisfies the error-code contract of myerrors, so the http status of the
// remote failure travels along when the error is written out.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("remote cart api returned %d: %s", e.StatusCode, e.Message)
}

func (e RemoteError) GetHTTPErrorCode() int {
	return e.StatusCode
}
