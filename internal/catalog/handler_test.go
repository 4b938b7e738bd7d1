package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshul/ecommerce-store/backend/internal/catalog"
	"github.com/anshul/ecommerce-store/backend/internal/common"
	"github.com/anshul/ecommerce-store/backend/internal/models"
)

type memProducts struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]models.Product
}

func newMemProducts() *memProducts {
	return &memProducts{products: map[int64]models.Product{}}
}

func (m *memProducts) ListProducts(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for id := m.nextID; id >= 1; id-- {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memProducts) CreateProduct(_ context.Context, req models.ProductRequest) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p := models.Product{
		ID: m.nextID, Name: req.Name, Description: req.Description,
		Price: req.Price, Image: req.Image, Category: req.Category,
		Stock: req.Stock, CreatedAt: time.Now(),
	}
	m.products[p.ID] = p
	return &p, nil
}

func (m *memProducts) UpdateProduct(_ context.Context, id int64, req models.ProductRequest) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", common.ErrNotFound, id)
	}
	p.Name, p.Description, p.Price = req.Name, req.Description, req.Price
	p.Image, p.Category, p.Stock = req.Image, req.Category, req.Stock
	m.products[id] = p
	return &p, nil
}

func (m *memProducts) DeleteProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("%w: product %d", common.ErrNotFound, id)
	}
	delete(m.products, id)
	return nil
}

func newCatalogRouter(store catalog.ProductStore) *chi.Mux {
	h := catalog.NewHandler(store, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/api/products", h.List)
	r.Get("/api/products/{id}", h.Get)
	r.Post("/api/products", h.Create)
	r.Put("/api/products/{id}", h.Update)
	r.Delete("/api/products/{id}", h.Delete)
	return r
}

func request(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sampleProduct() models.ProductRequest {
	return models.ProductRequest{
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless, hot-swappable",
		Price:       89.99,
		Image:       "https://cdn.example.com/kb.jpg",
		Category:    "electronics",
		Stock:       12,
	}
}

func TestProductCRUD(t *testing.T) {
	t.Parallel()

	r := newCatalogRouter(newMemProducts())

	// Create.
	rec := request(r, http.MethodPost, "/api/products", sampleProduct())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 89.99, created.Price)

	// List.
	rec = request(r, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// Get.
	rec = request(r, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Update.
	updated := sampleProduct()
	updated.Stock = 5
	rec = request(r, http.MethodPut, "/api/products/1", updated)
	require.Equal(t, http.StatusOK, rec.Code)
	var after models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, 5, after.Stock)

	// Delete, then the product is gone.
	rec = request(r, http.MethodDelete, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = request(r, http.MethodGet, "/api/products/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProduct_NotFound(t *testing.T) {
	t.Parallel()

	r := newCatalogRouter(newMemProducts())

	rec := request(r, http.MethodGet, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(r, http.MethodPut, "/api/products/99", sampleProduct())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(r, http.MethodDelete, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProduct_BadRequests(t *testing.T) {
	t.Parallel()

	r := newCatalogRouter(newMemProducts())

	// Non-numeric id.
	rec := request(r, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing fields.
	incomplete := sampleProduct()
	incomplete.Name = ""
	rec = request(r, http.MethodPost, "/api/products", incomplete)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Negative stock.
	negative := sampleProduct()
	negative.Stock = -1
	rec = request(r, http.MethodPost, "/api/products", negative)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed body.
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{"))
	raw := httptest.NewRecorder()
	r.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}
