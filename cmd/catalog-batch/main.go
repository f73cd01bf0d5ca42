package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"backoffice-data/internal/config"
	"backoffice-data/internal/database"
	"backoffice-data/internal/export"
	appLogger "backoffice-data/internal/logger"
	"backoffice-data/internal/repository"
	"backoffice-data/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command line arguments
	var demo = flag.Bool("demo", false, "Run the built-in demo sequence (category + products + update/delete/search)")
	var addCategory = flag.String("add-category", "", "Add a category with the given name")
	var addProduct = flag.String("add-product", "", "Add a product with the given name (use with -category, -price, -stock)")
	var categoryID = flag.Int64("category", 0, "Category ID for -add-product")
	var price = flag.Float64("price", 0, "Price for -add-product / -update")
	var stock = flag.Int("stock", 0, "Stock quantity for -add-product / -update")
	var updateID = flag.Int64("update", 0, "Update price and stock of the product with this ID")
	var deleteID = flag.Int64("delete", 0, "Delete the product with this ID")
	var maxPrice = flag.Float64("max-price", 0, "List products with price <= this value")
	var lowStock = flag.Int("low-stock", 0, "List products with stock below this threshold")
	var show = flag.Bool("show", false, "Show all products with their category names")
	var exportFile = flag.String("export", "", "Write the product catalog to this .xlsx file")
	flag.Parse()

	cfg := config.Load()

	logger, err := appLogger.NewLogger(cfg.Log.Level, cfg.Log.Format, "catalog-batch")
	if err != nil {
		log.Fatalf("Cannot build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	catalog := service.NewCatalogService(repository.NewPostgresCatalogRepository(db), logger)
	ctx := context.Background()

	if *demo {
		runDemo(ctx, catalog)
		return
	}

	ran := false

	if *addCategory != "" {
		ran = true
		id, err := catalog.AddCategory(ctx, *addCategory)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Category added (id=%d)\n", id)
		}
	}

	if *addProduct != "" {
		ran = true
		id, err := catalog.AddProduct(ctx, service.AddProductRequest{
			Name:          *addProduct,
			CategoryID:    *categoryID,
			Price:         *price,
			StockQuantity: *stock,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Product added (id=%d)\n", id)
		}
	}

	if *updateID != 0 {
		ran = true
		if err := catalog.UpdateProduct(ctx, *updateID, *price, *stock); err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Product %d updated\n", *updateID)
		}
	}

	if *deleteID != 0 {
		ran = true
		if err := catalog.DeleteProduct(ctx, *deleteID); err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Product %d deleted\n", *deleteID)
		}
	}

	if *maxPrice != 0 {
		ran = true
		products, err := catalog.SearchByMaxPrice(ctx, *maxPrice)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Products under %.2f:\n", *maxPrice)
			for _, p := range products {
				fmt.Printf("  [%d] %s  price=%.2f stock=%d\n", p.ProductID, p.Name, p.Price, p.StockQuantity)
			}
		}
	}

	if *lowStock != 0 {
		ran = true
		products, err := catalog.LowStockReport(ctx, *lowStock)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Products with stock below %d:\n", *lowStock)
			for _, p := range products {
				fmt.Printf("  [%d] %s  stock=%d\n", p.ProductID, p.Name, p.StockQuantity)
			}
		}
	}

	if *show {
		ran = true
		showCatalog(ctx, catalog)
	}

	if *exportFile != "" {
		ran = true
		rows, err := catalog.ListWithCategory(ctx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			data, err := export.GenerateCatalogExport(rows)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
			} else if err := os.WriteFile(*exportFile, data, 0o644); err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Printf("Catalog exported to %s (%d products)\n", *exportFile, len(rows))
			}
		}
	}

	if !ran {
		flag.Usage()
	}
}

// runDemo 跑一遍固定演示序列；单步失败打印错误后继续
func runDemo(ctx context.Context, catalog service.CatalogService) {
	catID, err := catalog.AddCategory(ctx, "fashion")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	if _, err := catalog.AddProduct(ctx, service.AddProductRequest{
		Name: "Shirt", CategoryID: catID, Price: 600, StockQuantity: 5,
	}); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	if _, err := catalog.AddProduct(ctx, service.AddProductRequest{
		Name: "Jeans", CategoryID: catID, Price: 1200, StockQuantity: 15,
	}); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	if err := catalog.UpdateProduct(ctx, 1, 500, 11); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	if err := catalog.DeleteProduct(ctx, 2); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	products, err := catalog.SearchByMaxPrice(ctx, 1000)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	} else {
		fmt.Println("Products under 1000:")
		for _, p := range products {
			fmt.Printf("  [%d] %s  price=%.2f stock=%d\n", p.ProductID, p.Name, p.Price, p.StockQuantity)
		}
	}

	low, err := catalog.LowStockReport(ctx, 5)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	} else {
		fmt.Println("Low stock products:")
		for _, p := range low {
			fmt.Printf("  [%d] %s  stock=%d\n", p.ProductID, p.Name, p.StockQuantity)
		}
	}

	showCatalog(ctx, catalog)
}

func showCatalog(ctx context.Context, catalog service.CatalogService) {
	rows, err := catalog.ListWithCategory(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Product catalog:")
	for _, row := range rows {
		category := "-"
		if row.HasCategory {
			category = row.CategoryName
		}
		fmt.Printf("  %s  category=%s price=%.2f stock=%d\n", row.Name, category, row.Price, row.StockQuantity)
	}
}
