package repository

import (
	"context"
	"sort"
	"sync"

	"backoffice-data/internal/domain"
)

// MemoryCatalogRepository 内存商品目录Repository（联测实现）
type MemoryCatalogRepository struct {
	mu             sync.RWMutex
	nextCategoryID int64
	nextProductID  int64
	categories     map[int64]*domain.Category
	products       map[int64]*domain.Product
}

var _ CatalogRepository = (*MemoryCatalogRepository)(nil)

func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		nextCategoryID: 1,
		nextProductID:  1,
		categories:     map[int64]*domain.Category{},
		products:       map[int64]*domain.Product{},
	}
}

func (r *MemoryCatalogRepository) CreateCategory(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := &domain.Category{CategoryID: r.nextCategoryID, CategoryName: name}
	r.nextCategoryID++
	r.categories[c.CategoryID] = c
	return c.CategoryID, nil
}

func (r *MemoryCatalogRepository) CreateProduct(_ context.Context, product *domain.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[product.CategoryID]; !ok {
		return 0, domain.NewNotFound("category not found")
	}

	p := *product
	p.ProductID = r.nextProductID
	r.nextProductID++
	r.products[p.ProductID] = &p
	return p.ProductID, nil
}

func (r *MemoryCatalogRepository) UpdateProduct(_ context.Context, id int64, price float64, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return domain.NewNotFound("product not found")
	}
	p.Price = price
	p.StockQuantity = stock
	return nil
}

func (r *MemoryCatalogRepository) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.NewNotFound("product not found")
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryCatalogRepository) listProducts(match func(*domain.Product) bool) []*domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Product{}
	for _, p := range r.products {
		if match != nil && !match(p) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (r *MemoryCatalogRepository) SearchByMaxPrice(_ context.Context, maxPrice float64) ([]*domain.Product, error) {
	return r.listProducts(func(p *domain.Product) bool { return p.Price <= maxPrice }), nil
}

func (r *MemoryCatalogRepository) LowStockReport(_ context.Context, threshold int) ([]*domain.Product, error) {
	return r.listProducts(func(p *domain.Product) bool { return p.StockQuantity < threshold }), nil
}

func (r *MemoryCatalogRepository) ListWithCategory(_ context.Context) ([]*domain.ProductWithCategory, error) {
	products := r.listProducts(nil)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ProductWithCategory, 0, len(products))
	for _, p := range products {
		row := &domain.ProductWithCategory{
			Name:          p.Name,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
		}
		if c, ok := r.categories[p.CategoryID]; ok {
			row.CategoryName = c.CategoryName
			row.HasCategory = true
		}
		out = append(out, row)
	}
	return out, nil
}
