package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

func TestSubmitCheckoutParsesConfirmation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders/checkout", r.URL.Path)

		var req checkoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(3), req.BranchID)
		require.Len(t, req.Items, 1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"order":{"orderId":11,"name":"Order from Cart","status":"pending"},"details":[{"quantity":2,"unitPrice":5.5}]}}`))
	}))
	defer srv.Close()

	client, err := NewAPIClient(srv.URL)
	require.NoError(t, err)

	confirmation, err := client.SubmitCheckout(context.Background(), 3, []Item{
		{ProductID: 1, Quantity: 2, UnitPrice: 5.5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), confirmation.OrderID)
	assert.Equal(t, "pending", confirmation.Status)
	assert.InDelta(t, 11.0, confirmation.Total, 1e-9)
}

func TestSubmitCheckoutSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"Product 9 not found"}}`))
	}))
	defer srv.Close()

	client, err := NewAPIClient(srv.URL)
	require.NoError(t, err)

	_, err = client.SubmitCheckout(context.Background(), 1, []Item{{ProductID: 9, Quantity: 1}})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "Product 9 not found", typed.Message())
}
