package repository

import (
	"context"

	"backoffice-data/internal/domain"
)

// CatalogRepository 商品目录Repository接口（categories + products）
type CatalogRepository interface {
	// CreateCategory 创建分类（不做唯一性检查，允许重名）
	CreateCategory(ctx context.Context, name string) (int64, error)

	// CreateProduct 创建商品；分类不存在时返回 NotFound
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)

	// UpdateProduct 按 id 更新价格与库存；无匹配行时返回 NotFound
	UpdateProduct(ctx context.Context, id int64, price float64, stock int) error

	// DeleteProduct 按 id 删除；无匹配行时返回 NotFound
	DeleteProduct(ctx context.Context, id int64) error

	// SearchByMaxPrice 查询价格 <= maxPrice 的商品
	SearchByMaxPrice(ctx context.Context, maxPrice float64) ([]*domain.Product, error)

	// LowStockReport 查询库存 < threshold 的商品
	LowStockReport(ctx context.Context, threshold int) ([]*domain.Product, error)

	// ListWithCategory 商品 + 分类名投影（LEFT JOIN，分类缺失时为空）
	ListWithCategory(ctx context.Context) ([]*domain.ProductWithCategory, error)
}
