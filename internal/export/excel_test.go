package export

import (
	"bytes"
	"testing"
	"time"

	"backoffice-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateCatalogExport(t *testing.T) {
	products := []*domain.ProductWithCategory{
		{Name: "Shirt", CategoryName: "fashion", HasCategory: true, Price: 500, StockQuantity: 11},
		{Name: "Orphan", HasCategory: false, Price: 42, StockQuantity: 3},
	}

	data, err := GenerateCatalogExport(products)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Catalog")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, CatalogExportHeader, rows[0])
	assert.Equal(t, "Shirt", rows[1][0])
	assert.Equal(t, "fashion", rows[1][1])
	assert.Equal(t, "500", rows[1][2])
	assert.Equal(t, "11", rows[1][3])

	// 无分类商品的 Category 列为空
	assert.Equal(t, "Orphan", rows[2][0])
	if len(rows[2]) > 1 {
		assert.Empty(t, rows[2][1])
	}
}

func TestGenerateOpenSessionExport(t *testing.T) {
	checkIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sessions := []*domain.OpenSession{
		{EmployeeID: 101, Name: "Alice", CheckIn: checkIn},
	}

	data, err := GenerateOpenSessionExport(sessions)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Open Sessions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, OpenSessionExportHeader, rows[0])
	assert.Equal(t, []string{"101", "Alice", "2024-03-01 09:00:00"}, rows[1])
}

func TestGenerateCatalogExport_Empty(t *testing.T) {
	data, err := GenerateCatalogExport(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Catalog")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, CatalogExportHeader, rows[0])
}
