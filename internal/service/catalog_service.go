package service

import (
	"context"

	"backoffice-data/internal/domain"
	"backoffice-data/internal/repository"

	"go.uber.org/zap"
)

// CatalogService 商品目录服务接口
type CatalogService interface {
	AddCategory(ctx context.Context, name string) (int64, error)
	AddProduct(ctx context.Context, req AddProductRequest) (int64, error)
	UpdateProduct(ctx context.Context, id int64, price float64, stock int) error
	DeleteProduct(ctx context.Context, id int64) error
	SearchByMaxPrice(ctx context.Context, maxPrice float64) ([]*domain.Product, error)
	LowStockReport(ctx context.Context, threshold int) ([]*domain.Product, error)
	ListWithCategory(ctx context.Context) ([]*domain.ProductWithCategory, error)
}

// catalogService 实现
type catalogService struct {
	catalogRepo repository.CatalogRepository
	logger      *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(catalogRepo repository.CatalogRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// AddProductRequest 创建商品请求
type AddProductRequest struct {
	Name          string
	CategoryID    int64
	Price         float64
	StockQuantity int
}

// AddCategory 创建分类（无唯一性检查，重名允许）
func (s *catalogService) AddCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, domain.NewValidation("category name is required")
	}

	id, err := s.catalogRepo.CreateCategory(ctx, name)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Category added", zap.String("name", name), zap.Int64("category_id", id))
	return id, nil
}

// AddProduct 创建商品；分类不存在时返回 NotFound
func (s *catalogService) AddProduct(ctx context.Context, req AddProductRequest) (int64, error) {
	if req.Name == "" {
		return 0, domain.NewValidation("product name is required")
	}

	id, err := s.catalogRepo.CreateProduct(ctx, &domain.Product{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Product added",
		zap.String("name", req.Name),
		zap.Int64("product_id", id),
		zap.Int64("category_id", req.CategoryID),
	)
	return id, nil
}

// UpdateProduct 更新价格与库存
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, price float64, stock int) error {
	if err := s.catalogRepo.UpdateProduct(ctx, id, price, stock); err != nil {
		return err
	}
	s.logger.Info("Product updated", zap.Int64("product_id", id))
	return nil
}

// DeleteProduct 删除商品
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

// SearchByMaxPrice 查询价格 <= maxPrice 的商品
func (s *catalogService) SearchByMaxPrice(ctx context.Context, maxPrice float64) ([]*domain.Product, error) {
	return s.catalogRepo.SearchByMaxPrice(ctx, maxPrice)
}

// LowStockReport 查询库存 < threshold 的商品
func (s *catalogService) LowStockReport(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return s.catalogRepo.LowStockReport(ctx, threshold)
}

// ListWithCategory 商品 + 分类名投影
func (s *catalogService) ListWithCategory(ctx context.Context) ([]*domain.ProductWithCategory, error) {
	return s.catalogRepo.ListWithCategory(ctx)
}
