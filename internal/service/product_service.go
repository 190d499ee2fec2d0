package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shoplite/internal/model"
	"shoplite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create validates the raw form fields, applies defaults and persists
// a new product.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Price) == "" {
		s.logger.Warn().Msg("title or price missing from product request")
		return nil, model.ErrTitlePriceRequired
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil || price < 0 {
		s.logger.Warn().Str("price", req.Price).Msg("invalid price in product request")
		return nil, model.ErrInvalidPrice
	}

	// Empty optional fields take their defaults.
	discount := 0.0
	if req.Discount != "" {
		discount, err = strconv.ParseFloat(req.Discount, 64)
		if err != nil {
			s.logger.Warn().Str("discount", req.Discount).Msg("invalid discount in product request")
			return nil, model.ErrInvalidDiscount
		}
	}

	rating := 0.0
	if req.Rating != "" {
		rating, err = strconv.ParseFloat(req.Rating, 64)
		if err != nil || rating < 0 || rating > 5 {
			s.logger.Warn().Str("rating", req.Rating).Msg("invalid rating in product request")
			return nil, model.ErrInvalidRating
		}
	}

	itemType := model.ItemTypeRegular
	if req.ItemType != "" {
		if !model.ValidItemType(req.ItemType) {
			s.logger.Warn().Str("item_type", req.ItemType).Msg("invalid item type in product request")
			return nil, model.ErrInvalidItemType
		}
		itemType = req.ItemType
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := &model.Product{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		Price:     price,
		Discount:  discount,
		ItemType:  itemType,
		Rating:    rating,
		Images:    images,
		CreatedAt: time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("title", product.Title).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("title", product.Title).
		Int("images", len(product.Images)).
		Msg("product created")

	return product, nil
}

// List retrieves all products, most recent first.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAllByRecency(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}
