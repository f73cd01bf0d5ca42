package repository

import (
	"context"
	"database/sql"

	"backoffice-data/internal/domain"
)

// PostgresCatalogRepository 商品目录Repository实现
type PostgresCatalogRepository struct {
	db *sql.DB
}

// NewPostgresCatalogRepository 创建商品目录Repository
func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

// 确保实现了接口
var _ CatalogRepository = (*PostgresCatalogRepository)(nil)

// CreateCategory 创建分类
func (r *PostgresCatalogRepository) CreateCategory(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (category_name)
		 VALUES ($1)
		 RETURNING category_id`,
		name,
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err, "create category")
	}
	return id, nil
}

// CreateProduct 创建商品
// 分类存在性检查与插入在同一事务内完成
func (r *PostgresCatalogRepository) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapSQLError(err, "create product")
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE category_id = $1)`, product.CategoryID,
	).Scan(&exists)
	if err != nil {
		return 0, mapSQLError(err, "create product")
	}
	if !exists {
		return 0, domain.NewNotFound("category not found")
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO products (name, category_id, price, stock_quantity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING product_id`,
		product.Name, product.CategoryID, product.Price, product.StockQuantity,
	).Scan(&id)
	if err != nil {
		return 0, mapSQLError(err, "create product")
	}

	if err := tx.Commit(); err != nil {
		return 0, mapSQLError(err, "create product")
	}
	return id, nil
}

// UpdateProduct 按 id 更新价格与库存
// 零行匹配返回 NotFound，不静默成功
func (r *PostgresCatalogRepository) UpdateProduct(ctx context.Context, id int64, price float64, stock int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET price = $1, stock_quantity = $2 WHERE product_id = $3`,
		price, stock, id,
	)
	if err != nil {
		return mapSQLError(err, "update product")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapSQLError(err, "update product")
	}
	if affected == 0 {
		return domain.NewNotFound("product not found")
	}
	return nil
}

// DeleteProduct 按 id 删除（同样以零行匹配作为 NotFound）
func (r *PostgresCatalogRepository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE product_id = $1`, id,
	)
	if err != nil {
		return mapSQLError(err, "delete product")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapSQLError(err, "delete product")
	}
	if affected == 0 {
		return domain.NewNotFound("product not found")
	}
	return nil
}

func (r *PostgresCatalogRepository) queryProducts(ctx context.Context, op, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLError(err, op)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ProductID,
			&p.Name,
			&p.CategoryID,
			&p.Price,
			&p.StockQuantity,
		)
		if err != nil {
			return nil, mapSQLError(err, op)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLError(err, op)
	}

	return products, nil
}

// SearchByMaxPrice 查询价格 <= maxPrice 的商品
func (r *PostgresCatalogRepository) SearchByMaxPrice(ctx context.Context, maxPrice float64) ([]*domain.Product, error) {
	query := `
		SELECT product_id, name, category_id, price, stock_quantity
		FROM products
		WHERE price <= $1
		ORDER BY product_id
	`
	return r.queryProducts(ctx, "search products", query, maxPrice)
}

// LowStockReport 查询库存 < threshold 的商品
func (r *PostgresCatalogRepository) LowStockReport(ctx context.Context, threshold int) ([]*domain.Product, error) {
	query := `
		SELECT product_id, name, category_id, price, stock_quantity
		FROM products
		WHERE stock_quantity < $1
		ORDER BY product_id
	`
	return r.queryProducts(ctx, "low stock report", query, threshold)
}

// ListWithCategory 商品 + 分类名投影
func (r *PostgresCatalogRepository) ListWithCategory(ctx context.Context) ([]*domain.ProductWithCategory, error) {
	query := `
		SELECT
			p.name,
			c.category_name,
			p.price,
			p.stock_quantity
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.category_id
		ORDER BY p.product_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapSQLError(err, "list products")
	}
	defer rows.Close()

	products := []*domain.ProductWithCategory{}
	for rows.Next() {
		var p domain.ProductWithCategory
		var categoryName sql.NullString
		err := rows.Scan(&p.Name, &categoryName, &p.Price, &p.StockQuantity)
		if err != nil {
			return nil, mapSQLError(err, "list products")
		}
		if categoryName.Valid {
			p.CategoryName = categoryName.String
			p.HasCategory = true
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLError(err, "list products")
	}

	return products, nil
}
