package catalog

import (
	"context"

	"github.com/quickbite/storefront/services/cartapi"
)

//go:generate mockgen -source=api.go -package catalog -destination caller_mock.go CatalogCaller
type CatalogCaller interface {
	// FetchMenu returns the full list of orderable products.
	FetchMenu(c context.Context) ([]cartapi.Product, error)
}
