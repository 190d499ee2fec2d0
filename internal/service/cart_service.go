package service

import (
	"context"
	"fmt"

	"shoplite/internal/model"
	"shoplite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart adds a product to the cart. The referenced product must
// exist; quantities at or below zero fall back to 1.
func (s *cartService) AddToCart(ctx context.Context, req *model.CartRequest) (*model.CartItem, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		// A malformed ID cannot reference an existing product.
		s.logger.Warn().Str("product_id", req.ProductID).Msg("malformed product ID")
		return nil, model.ErrProductNotFound
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		s.logger.Warn().Str("product_id", req.ProductID).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	item, err := s.cartRepo.AddOrIncrement(ctx, productID, quantity)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to add to cart")
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("cart_item_id", item.ID.String()).
		Str("product_id", req.ProductID).
		Int("quantity", item.Quantity).
		Msg("product added to cart")

	return item, nil
}

// List retrieves all cart lines with their products resolved.
func (s *cartService) List(ctx context.Context) ([]model.CartEntry, error) {
	entries, err := s.cartRepo.GetAllWithProduct(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list cart")
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	s.logger.Debug().Int("count", len(entries)).Msg("retrieved cart entries")

	return entries, nil
}
