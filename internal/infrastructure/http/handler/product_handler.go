package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/adventureworks-api/internal/app/dto"
	"github.com/mrops-br/adventureworks-api/internal/app/service"
	"github.com/mrops-br/adventureworks-api/internal/domain"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/http/response"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/telemetry"
)

// ProductsPath is the collection route; single products live under ProductsPath/{id}.
const ProductsPath = "/api/products"

var errInvalidProductID = errors.New("product id must be a 32-bit integer")

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProductByID(telemetry.WithProductID(r.Context(), id), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, fmt.Sprintf("%s/%d", ProductsPath, product.ProductID), product)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.UpdateProduct(telemetry.WithProductID(r.Context(), id), id, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.NoContent(w)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(telemetry.WithProductID(r.Context(), id), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.NoContent(w)
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, errInvalidProductID)
		return 0, false
	}
	return int32(id), true
}

func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request) (*dto.ProductRequest, bool) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return nil, false
	}
	return &req, true
}

func (h *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		response.Error(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrProductIDMismatch),
		errors.Is(err, domain.ErrInvalidProductName),
		errors.Is(err, domain.ErrInvalidProductNumber),
		errors.Is(err, domain.ErrInvalidProductPrice):
		response.Error(w, http.StatusBadRequest, err)
	default:
		h.logger.ErrorContext(r.Context(), "Request failed",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusInternalServerError, err)
	}
}
