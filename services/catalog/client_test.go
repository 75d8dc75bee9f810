package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quickbite/storefront/lib/myhttpclient"
)

func TestCatalogClient(t *testing.T) {

	t.Run("Fetch menu", func(t *testing.T) {
		// setup
		ctx := context.TODO()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/items", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[
				{"_id":"p1","name":"Paneer Tikka","price":250,"category":"Starters"},
				{"_id":"p2","name":"Butter Naan","price":40,"category":"Breads"}
			]}`))
		}))
		defer server.Close()
		sut := NewClient(server.URL, myhttpclient.New())

		// when
		items, err := sut.FetchMenu(ctx)

		// then
		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "Paneer Tikka", items[0].Name)
		assert.Equal(t, 250, items[0].Price)
	})

	t.Run("Server error", func(t *testing.T) {
		// setup
		ctx := context.TODO()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()
		sut := NewClient(server.URL, myhttpclient.New())

		// when
		items, err := sut.FetchMenu(ctx)

		// then
		assert.Error(t, err)
		assert.Empty(t, items)
	})

	t.Run("Unreachable server", func(t *testing.T) {
		// setup
		ctx := context.TODO()
		sut := NewClient("http://localhost:1", myhttpclient.New())

		// when
		_, err := sut.FetchMenu(ctx)

		// then
		assert.Error(t, err)
	})
}
