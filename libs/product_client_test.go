package libs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerce-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, handler http.HandlerFunc) *ProductClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProductClient(srv.URL+"/", time.Second)
}

func TestLookupProduct(t *testing.T) {
	client := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/10", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","data":{"id":10,"name":"Laptop","price":9.99,"stock":3}}`))
	})

	p, err := client.LookupProduct(context.Background(), 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, p.ID)
	assert.Equal(t, "Laptop", p.Name)
	assert.True(t, decimal.RequireFromString("9.99").Equal(p.Price))
}

func TestLookupProductErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"success":false}`, models.ErrProductNotFound},
		{"server error", http.StatusInternalServerError, `{}`, models.ErrUpstream},
		{"missing price", http.StatusOK, `{"success":true,"data":{"id":1,"name":"x"}}`, models.ErrUpstream},
		{"no data", http.StatusOK, `{"success":true}`, models.ErrUpstream},
		{"not json", http.StatusOK, `<html>`, models.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := client.LookupProduct(context.Background(), 1)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLookupProductTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewProductClient(srv.URL, 20*time.Millisecond)
	_, err := client.LookupProduct(context.Background(), 1)
	require.ErrorIs(t, err, models.ErrUpstream)
}

func TestLookupProductUnreachable(t *testing.T) {
	client := NewProductClient("http://127.0.0.1:1", time.Second)
	_, err := client.LookupProduct(context.Background(), 1)
	require.ErrorIs(t, err, models.ErrUpstream)
	assert.Equal(t, models.KindUpstream, models.KindOf(err))
}
