package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"shoplite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_AddOrIncrement(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	productRepo := NewProductRepository(pool, zerolog.Nop())
	cartRepo := NewCartRepository(pool, zerolog.Nop())
	ctx := context.Background()

	product := insertProduct(t, productRepo, "apples", time.Now())

	// First add creates the line.
	first, err := cartRepo.AddOrIncrement(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, product.ID, first.ProductID)
	assert.Equal(t, 3, first.Quantity)
	assert.False(t, first.AddedAt.IsZero())

	// Second add mutates the same line instead of creating another.
	second, err := cartRepo.AddOrIncrement(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	line, err := cartRepo.GetByProductID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, 5, line.Quantity)
}

func TestCartRepository_AddOrIncrement_UnknownProduct(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	cartRepo := NewCartRepository(pool, zerolog.Nop())

	// The foreign key rejects lines referencing no product.
	item, err := cartRepo.AddOrIncrement(context.Background(), uuid.New(), 1)
	require.Error(t, err)
	assert.Nil(t, item)
}

func TestCartRepository_AddOrIncrement_ConcurrentAddsSingleLine(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	productRepo := NewProductRepository(pool, zerolog.Nop())
	cartRepo := NewCartRepository(pool, zerolog.Nop())
	ctx := context.Background()

	product := insertProduct(t, productRepo, "apples", time.Now())

	const adds = 10

	var wg sync.WaitGroup
	errs := make([]error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cartRepo.AddOrIncrement(ctx, product.ID, 1)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	// Exactly one line, with every add accounted for.
	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE product_id = $1`, product.ID).Scan(&count))
	assert.Equal(t, 1, count)

	line, err := cartRepo.GetByProductID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, adds, line.Quantity)
}

func TestCartRepository_GetByProductID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	cartRepo := NewCartRepository(pool, zerolog.Nop())

	line, err := cartRepo.GetByProductID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, line)
}

func TestCartRepository_GetAllWithProduct(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	productRepo := NewProductRepository(pool, zerolog.Nop())
	cartRepo := NewCartRepository(pool, zerolog.Nop())
	ctx := context.Background()

	apples := insertProduct(t, productRepo, "apples", time.Now())
	pears := insertProduct(t, productRepo, "pears", time.Now())

	_, err := cartRepo.AddOrIncrement(ctx, apples.ID, 2)
	require.NoError(t, err)
	_, err = cartRepo.AddOrIncrement(ctx, pears.ID, 1)
	require.NoError(t, err)

	entries, err := cartRepo.GetAllWithProduct(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byProduct := map[uuid.UUID]model.CartEntry{}
	for _, e := range entries {
		byProduct[e.ProductID] = e
	}

	appleEntry, ok := byProduct[apples.ID]
	require.True(t, ok)
	assert.Equal(t, 2, appleEntry.Quantity)
	assert.Equal(t, "apples", appleEntry.Product.Title)
	assert.Equal(t, apples.ID, appleEntry.Product.ID)

	pearEntry, ok := byProduct[pears.ID]
	require.True(t, ok)
	assert.Equal(t, 1, pearEntry.Quantity)
	assert.Equal(t, "pears", pearEntry.Product.Title)
}

func TestCartRepository_GetAllWithProduct_Empty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	cartRepo := NewCartRepository(pool, zerolog.Nop())

	entries, err := cartRepo.GetAllWithProduct(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
