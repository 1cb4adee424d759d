package upstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Supermili365/expirapp/internal/upstream"
)

func newClient(srv *httptest.Server) *upstream.Client {
	c := upstream.New(srv.URL, "/orders")
	c.HTTP = srv.Client()
	return c
}

func TestLoginParsesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@correo.com", body["correo"])
		assert.Equal(t, "secreta1", body["contrasena"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"token":"tok-123","usuario":{"id_usuario":4,"nombre":"Ana","correo":"ana@correo.com","rol":"cliente"}}}`))
	}))
	defer srv.Close()

	creds, err := newClient(srv).Login(context.Background(), "ana@correo.com", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", creds.Token)
	assert.Equal(t, 4, creds.User.ID)
	assert.Equal(t, "Ana", creds.User.Name)
}

func TestLoginBadCredentialsIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "credenciales invalidas", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newClient(srv).Login(context.Background(), "ana@correo.com", "mal")
	var se *upstream.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "credenciales invalidas", se.Body)
	assert.False(t, se.Retryable())
}

func TestProductsAcceptsBothShapes(t *testing.T) {
	bare := `[{"id_producto":1,"nombre":"Pan","precio":2500}]`
	wrapped := `{"productos":[{"id_producto":1,"nombre":"Pan","precio":2500},{"id_producto":2,"nombre":"Leche","precio":0}]}`

	for name, payload := range map[string]string{"bare array": bare, "wrapped": wrapped} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/products/", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(payload))
			}))
			defer srv.Close()

			products, err := newClient(srv).Products(context.Background())
			require.NoError(t, err)
			require.NotEmpty(t, products)
			assert.Equal(t, 1, products[0].ID)
			assert.Equal(t, "Pan", products[0].Name)
		})
	}
}

func TestPlaceOrderUsesConfiguredPathAndBearer(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq upstream.OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderId":88,"message":"Orden creada"}`))
	}))
	defer srv.Close()

	c := upstream.New(srv.URL, "/api/orders/")
	c.HTTP = srv.Client()

	receipt, err := c.PlaceOrder(context.Background(), "tok-123", upstream.OrderRequest{
		ClientID:      4,
		StoreID:       10,
		PaymentMethod: "card",
		Items:         []upstream.OrderItem{{ProductID: 1, Quantity: 2, UnitPrice: 2500}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, 10, gotReq.StoreID)
	assert.Len(t, gotReq.Items, 1)
	assert.Equal(t, int64(88), receipt.OrderID)
}

func TestPlaceOrderNonJSONBodyStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	receipt, err := newClient(srv).PlaceOrder(context.Background(), "tok", upstream.OrderRequest{ClientID: 1, StoreID: 2})
	require.NoError(t, err)
	assert.Zero(t, receipt.OrderID)
	assert.NotEmpty(t, receipt.Message)
}

func TestPlaceOrderServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newClient(srv).PlaceOrder(context.Background(), "tok", upstream.OrderRequest{ClientID: 1, StoreID: 2})
	var se *upstream.StatusError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.Retryable())
}

func TestContextCancelStopsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newClient(srv).Products(ctx)
	require.Error(t, err)
	var se *upstream.StatusError
	assert.False(t, errors.As(err, &se), "transport errors are not StatusError")
}
