package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"shoplite/internal/media"
	"shoplite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockMediaStore is a mock implementation of media.Store.
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Save(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMediaStore) Remove(ctx context.Context, paths []string) error {
	args := m.Called(ctx, paths)
	return args.Error(0)
}

type formFile struct {
	name        string
	contentType string
	content     []byte
}

// newProductRequest builds a multipart POST /api/products request.
func newProductRequest(t *testing.T, fields map[string]string, files []formFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	created := &model.Product{
		ID:        uuid.New(),
		Title:     "Apples",
		Price:     2,
		ItemType:  model.ItemTypeRegular,
		Images:    []string{},
		CreatedAt: time.Now(),
	}

	t.Run("Success without images", func(t *testing.T) {
		mockService := new(MockProductService)
		mockStore := new(MockMediaStore)
		h := NewProductHandler(mockService, mockStore, logger)

		mockService.On("Create", mock.Anything, &model.ProductRequest{
			Title:  "Apples",
			Price:  "2",
			Images: []string{},
		}).Return(created, nil)

		req := newProductRequest(t, map[string]string{"title": "Apples", "price": "2"}, nil)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var body model.ProductResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Product created successfully", body.Message)
		require.NotNil(t, body.Product)
		assert.Equal(t, created.ID, body.Product.ID)

		mockService.AssertExpectations(t)
		mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Success with images stores files first", func(t *testing.T) {
		mockService := new(MockProductService)
		mockStore := new(MockMediaStore)
		h := NewProductHandler(mockService, mockStore, logger)

		stored := []string{"/uploads/1.png"}
		mockStore.On("Save", mock.Anything, mock.Anything).Return(stored, nil)
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(req *model.ProductRequest) bool {
			return req.Title == "Apples" && len(req.Images) == 1 && req.Images[0] == "/uploads/1.png"
		})).Return(created, nil)

		req := newProductRequest(t,
			map[string]string{"title": "Apples", "price": "2"},
			[]formFile{{name: "a.png", contentType: "image/png", content: []byte("png")}},
		)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Missing title and price", func(t *testing.T) {
		mockService := new(MockProductService)
		mockStore := new(MockMediaStore)
		h := NewProductHandler(mockService, mockStore, logger)

		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, model.ErrTitlePriceRequired)

		req := newProductRequest(t, map[string]string{"discount": "1"}, nil)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Title and price are required", decodeErrorBody(t, w).Error)
	})

	t.Run("Upload violation yields 400 and no create", func(t *testing.T) {
		mockService := new(MockProductService)
		mockStore := new(MockMediaStore)
		h := NewProductHandler(mockService, mockStore, logger)

		mockStore.On("Save", mock.Anything, mock.Anything).
			Return(nil, media.ErrFileTooLarge)

		req := newProductRequest(t,
			map[string]string{"title": "Apples", "price": "2"},
			[]formFile{{name: "big.png", contentType: "image/png", content: []byte("pretend-big")}},
		)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "File upload error: file too large", decodeErrorBody(t, w).Error)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Stored images removed when create fails", func(t *testing.T) {
		mockService := new(MockProductService)
		mockStore := new(MockMediaStore)
		h := NewProductHandler(mockService, mockStore, logger)

		stored := []string{"/uploads/1.png"}
		mockStore.On("Save", mock.Anything, mock.Anything).Return(stored, nil)
		mockStore.On("Remove", mock.Anything, stored).Return(nil)
		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.New("database error"))

		req := newProductRequest(t,
			map[string]string{"title": "Apples", "price": "2"},
			[]formFile{{name: "a.png", contentType: "image/png", content: []byte("png")}},
		)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeErrorBody(t, w).Error)
		mockStore.AssertExpectations(t)
	})

	t.Run("Internal failure", func(t *testing.T) {
		mockService := new(MockProductService)
		mockStore := new(MockMediaStore)
		h := NewProductHandler(mockService, mockStore, logger)

		mockService.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.New("database error"))

		req := newProductRequest(t, map[string]string{"title": "Apples", "price": "2"}, nil)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeErrorBody(t, w).Error)
	})

	t.Run("Method not allowed", func(t *testing.T) {
		h := NewProductHandler(new(MockProductService), new(MockMediaStore), logger)

		req := httptest.NewRequest(http.MethodDelete, "/api/products", nil)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("Non-multipart body", func(t *testing.T) {
		h := NewProductHandler(new(MockProductService), new(MockMediaStore), logger)

		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		h := NewProductHandler(mockService, new(MockMediaStore), logger)

		products := []model.Product{
			{ID: uuid.New(), Title: "Newer", Price: 3, CreatedAt: time.Now()},
			{ID: uuid.New(), Title: "Older", Price: 2, CreatedAt: time.Now().Add(-time.Hour)},
		}
		mockService.On("List", mock.Anything).Return(products, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		h.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body []model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, "Newer", body[0].Title)
	})

	t.Run("Empty catalogue returns empty array", func(t *testing.T) {
		mockService := new(MockProductService)
		h := NewProductHandler(mockService, new(MockMediaStore), logger)

		mockService.On("List", mock.Anything).Return([]model.Product(nil), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		h.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Service error", func(t *testing.T) {
		mockService := new(MockProductService)
		h := NewProductHandler(mockService, new(MockMediaStore), logger)

		mockService.On("List", mock.Anything).Return(nil, errors.New("database error"))

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		h.List(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeErrorBody(t, w).Error)
	})
}
