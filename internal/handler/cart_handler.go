package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shoplite/internal/model"
	"shoplite/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Add handles POST /api/cart requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "Product ID is required", h.logger)
		return
	}

	item, err := h.service.AddToCart(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.CartResponse{
		Message:  "Product added to cart successfully",
		CartItem: item,
	})
}

// List handles GET /api/cart requests.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	entries, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	if entries == nil {
		entries = []model.CartEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
