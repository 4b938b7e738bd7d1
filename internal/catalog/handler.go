// Package catalog implements the product catalog HTTP handlers. Reads are
// public; mutations sit behind the auth middleware with the admin role.
package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/anshul/ecommerce-store/backend/internal/httpx"
	"github.com/anshul/ecommerce-store/backend/internal/models"
	"github.com/anshul/ecommerce-store/backend/internal/validate"
)

// ProductStore defines the interface for product persistence.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// Handler holds product-related HTTP handlers.
type Handler struct {
	products ProductStore
	log      zerolog.Logger
}

func NewHandler(products ProductStore, log zerolog.Logger) *Handler {
	return &Handler{products: products, log: log}
}

// List returns all products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

// Get returns a single product by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}
	if product == nil {
		httpx.Error(w, http.StatusNotFound, "product not found")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Create adds a new product. Admin only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.products.CreateProduct(r.Context(), req)
	if err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}

	h.log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	httpx.JSON(w, http.StatusCreated, product)
}

// Update replaces an existing product. Admin only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, req)
	if err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// Delete removes a product. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (models.ProductRequest, bool) {
	var req models.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "all product fields are required")
		return req, false
	}
	return req, true
}
