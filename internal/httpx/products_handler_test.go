package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-order-services.git/internal/products"
)

type memProducts struct {
	byID   map[int64]*products.Product
	nextID int64
}

func newMemProducts() *memProducts {
	return &memProducts{byID: map[int64]*products.Product{}, nextID: 1}
}

func (m *memProducts) GetAll(ctx context.Context) ([]products.Product, error) {
	out := make([]products.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProducts) Get(ctx context.Context, id int64) (*products.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, products.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) Add(ctx context.Context, p *products.Product) error {
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) Edit(ctx context.Context, p *products.Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return products.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) Remove(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return products.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func newProductsServer(t *testing.T) (*httptest.Server, *memProducts) {
	t.Helper()
	repo := newMemProducts()
	r := NewRouter(nil)
	(&ProductsHandler{Repo: repo}).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestProductCRUD(t *testing.T) {
	srv, repo := newProductsServer(t)

	resp := postJSON(t, srv.URL+"/products", products.Product{Name: "Hammer", Price: 100, ItemsInStock: 10})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/products/1", resp.Header.Get("Location"))

	// Full-record replace: stock updates arrive this way from the
	// order service.
	put := putJSON(t, srv.URL+"/products/1", products.Product{ID: 1, Name: "Hammer", Price: 100, ItemsInStock: 6})
	put.Body.Close()
	require.Equal(t, http.StatusNoContent, put.StatusCode)

	got, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, got.ItemsInStock)

	list, err := http.Get(srv.URL + "/products")
	require.NoError(t, err)
	defer list.Body.Close()
	var all []products.Product
	require.NoError(t, json.NewDecoder(list.Body).Decode(&all))
	assert.Len(t, all, 1)

	del := doDelete(t, srv.URL+"/products/1")
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)
}

func TestProductUpdateMissing(t *testing.T) {
	srv, _ := newProductsServer(t)

	resp := putJSON(t, srv.URL+"/products/9", products.Product{ID: 9, Name: "Ghost"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductGetMissing(t *testing.T) {
	srv, _ := newProductsServer(t)

	resp, err := http.Get(srv.URL + "/products/5")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
