package myhttpclient

import "context"

//go:generate mockgen -source=api.go -package myhttpclient -destination client_mock.go HTTPSender
type HTTPSender interface {
	// Send performs a JSON request and returns the http status-code and raw response payload.
	// An empty bearerToken means the request is sent without an Authorization header.
	Send(c context.Context, method string, url string, body []byte, bearerToken string) (int, []byte, error)
}

func New() HTTPSender {
	return newJSONHTTPClient()
}
