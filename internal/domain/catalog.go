package domain

// Category 商品分类领域模型（对应 categories 表）
// 分类名不做唯一性约束，重复创建是允许的
type Category struct {
	CategoryID   int64  `db:"category_id"`
	CategoryName string `db:"category_name"`
}

// Product 商品领域模型（对应 products 表）
type Product struct {
	ProductID     int64   `db:"product_id"`
	Name          string  `db:"name"`
	CategoryID    int64   `db:"category_id"` // FK to categories
	Price         float64 `db:"price"`
	StockQuantity int     `db:"stock_quantity"`
}

// ProductWithCategory 商品 + 分类名（LEFT JOIN 投影）
type ProductWithCategory struct {
	Name          string
	CategoryName  string // 分类无法解析时为空串
	HasCategory   bool
	Price         float64
	StockQuantity int
}
