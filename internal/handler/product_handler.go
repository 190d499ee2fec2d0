package handler

import (
	"errors"
	"net/http"

	"shoplite/internal/media"
	"shoplite/internal/model"
	"shoplite/internal/service"

	"github.com/rs/zerolog"
)

// maxFormMemory bounds how much of a multipart body is held in memory
// while parsing; the rest spills to temporary files.
const maxFormMemory = 32 << 20

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	store   media.Store
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, store media.Store, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		store:   store,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /api/products requests. Image attachments are
// validated and stored first; if the record insert fails afterwards
// the stored files are removed again.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return
	}

	images := []string{}
	if r.MultipartForm != nil {
		uploads := r.MultipartForm.File["images"]
		if len(uploads) > 0 {
			stored, err := h.store.Save(r.Context(), uploads)
			if err != nil {
				var uploadErr *media.UploadError
				if errors.As(err, &uploadErr) {
					writeError(w, http.StatusBadRequest, "File upload error: "+uploadErr.Detail, h.logger)
					return
				}
				writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
				return
			}
			images = stored
		}
	}

	req := &model.ProductRequest{
		Title:    r.FormValue("title"),
		Price:    r.FormValue("price"),
		Discount: r.FormValue("discount"),
		ItemType: r.FormValue("itemType"),
		Rating:   r.FormValue("rating"),
		Images:   images,
	}

	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		// The record never made it in; don't orphan the uploads.
		if len(images) > 0 {
			if rmErr := h.store.Remove(r.Context(), images); rmErr != nil {
				h.logger.Error().Err(rmErr).Msg("failed to remove stored images after create failure")
			}
		}

		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeError(w, http.StatusBadRequest, domainErr.Message, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.ProductResponse{
		Message: "Product created successfully",
		Product: product,
	})
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	products, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}
