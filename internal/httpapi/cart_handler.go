package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/checkout"
	"shopfront/internal/domain"
)

type CartHandler struct {
	manager  *cart.Manager
	catalog  *api.CatalogClient
	checkout *checkout.Service
	log      *zap.Logger
}

func NewCartHandler(manager *cart.Manager, catalog *api.CatalogClient, co *checkout.Service, log *zap.Logger) *CartHandler {
	return &CartHandler{manager: manager, catalog: catalog, checkout: co, log: log}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type EntryDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponseDTO struct {
	Entries   []EntryDTO      `json:"entries"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SummaryResponseDTO struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func cartResponse(snapshot domain.Cart) CartResponseDTO {
	resp := CartResponseDTO{
		Entries:   make([]EntryDTO, 0, len(snapshot.Entries)),
		ItemCount: snapshot.ItemCount(),
		Subtotal:  snapshot.Subtotal(),
	}
	for _, e := range snapshot.Entries {
		resp.Entries = append(resp.Entries, EntryDTO{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			UnitPrice: e.Product.Price,
			ImageURL:  e.Product.ImageURL,
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal(),
		})
	}
	return resp
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(h.manager.Snapshot()))
}

// AddItem resolves the product against the catalog and adds the snapshot to
// the cart. The backend stays the source of product truth; the cart only
// keeps the add-time copy.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		h.handleBackendError(w, err)
		return
	}

	h.manager.Add(product, req.Quantity)
	respondJSON(w, http.StatusCreated, cartResponse(h.manager.Snapshot()))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero removes the entry, matching SetQuantity semantics.
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	h.manager.SetQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, cartResponse(h.manager.Snapshot()))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	h.manager.Remove(productID)
	respondJSON(w, http.StatusOK, cartResponse(h.manager.Snapshot()))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.manager.Clear()
	respondJSON(w, http.StatusOK, cartResponse(h.manager.Snapshot()))
}

func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SummaryResponseDTO{
		ItemCount: h.manager.ItemCount(),
		Subtotal:  h.manager.Subtotal(),
	})
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.Submit(r.Context())
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		return
	}
	if err != nil {
		h.handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *CartHandler) handleBackendError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound:
			respondError(w, http.StatusNotFound, "not_found", apiErr.Message)
		case http.StatusUnauthorized:
			respondError(w, http.StatusUnauthorized, "unauthenticated", apiErr.Message)
		default:
			respondError(w, http.StatusBadGateway, "backend_error", apiErr.Message)
		}
		return
	}

	h.log.Warn("backend call failed", zap.Error(err))
	respondError(w, http.StatusBadGateway, "backend_unreachable", "backend request failed")
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are gone at this point, nothing left to do but note it.
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}
