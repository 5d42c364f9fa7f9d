package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products/7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Product{ID: 7, Name: "Hammer", Price: 100, ItemsInStock: 10})
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL + "/products")
	p, err := c.Product(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Hammer", p.Name)
	assert.Equal(t, 10, p.ItemsInStock)
}

func TestProductClientNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL + "/products")
	_, err := c.Product(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProductClientRetriesThenUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL + "/products")
	_, err := c.Product(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestProductClientRecoversMidRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(Product{ID: 1, Name: "Drill"})
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL + "/products")
	p, err := c.Product(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Drill", p.Name)
	assert.Equal(t, int32(2), calls.Load())
}

func TestProductClientUpdate(t *testing.T) {
	var got Product
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/3", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewProductClient(srv.URL + "/products")
	err := c.UpdateProduct(context.Background(), &Product{ID: 3, Name: "Drill", ItemsInStock: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, got.ItemsInStock)
}

func TestCustomerClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Customer{ID: 1, CompanyName: "EASV"})
	}))
	defer srv.Close()

	c := NewCustomerClient(srv.URL + "/customers")
	cust, err := c.Customer(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "EASV", cust.CompanyName)
}

func TestCustomerClientMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewCustomerClient(srv.URL + "/customers")
	_, err := c.Customer(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetryHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCustomerClient(srv.URL + "/customers")
	_, err := c.Customer(ctx, 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
