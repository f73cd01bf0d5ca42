package service

import (
	"context"
	"testing"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalogService() CatalogService {
	return NewCatalogService(repository.NewMemoryCatalogRepository(), zap.NewNop())
}

func TestAddCategory_AllowsDuplicateNames(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	id1, err := svc.AddCategory(ctx, "fashion")
	require.NoError(t, err)
	id2, err := svc.AddCategory(ctx, "fashion")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestAddCategory_MissingName(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.AddCategory(context.Background(), "")
	assert.True(t, domain.IsValidation(err))
}

func TestAddProduct_UnknownCategory(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.AddProduct(context.Background(), AddProductRequest{
		Name: "Shirt", CategoryID: 99, Price: 600, StockQuantity: 5,
	})
	assert.True(t, domain.IsNotFound(err))
}

func TestCatalog_FullFlow(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	catID, err := svc.AddCategory(ctx, "fashion")
	require.NoError(t, err)

	shirtID, err := svc.AddProduct(ctx, AddProductRequest{
		Name: "Shirt", CategoryID: catID, Price: 600, StockQuantity: 5,
	})
	require.NoError(t, err)
	jeansID, err := svc.AddProduct(ctx, AddProductRequest{
		Name: "Jeans", CategoryID: catID, Price: 1200, StockQuantity: 15,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProduct(ctx, shirtID, 500, 11))
	require.NoError(t, svc.DeleteProduct(ctx, jeansID))

	under1000, err := svc.SearchByMaxPrice(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, under1000, 1)
	assert.Equal(t, "Shirt", under1000[0].Name)
	assert.Equal(t, 500.0, under1000[0].Price)
	assert.Equal(t, 11, under1000[0].StockQuantity)

	// 阈值为严格小于
	low, err := svc.LowStockReport(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, low)

	low, err = svc.LowStockReport(ctx, 12)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Shirt", low[0].Name)

	rows, err := svc.ListWithCategory(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fashion", rows[0].CategoryName)
	assert.True(t, rows[0].HasCategory)
}

func TestUpdateProduct_Missing(t *testing.T) {
	svc := newTestCatalogService()

	err := svc.UpdateProduct(context.Background(), 42, 100, 1)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteProduct_Missing(t *testing.T) {
	svc := newTestCatalogService()

	err := svc.DeleteProduct(context.Background(), 42)
	assert.True(t, domain.IsNotFound(err))
}
