package service

import (
	"fmt"
	"testing"

	"go-kasir-pos/internal/model"
	"go-kasir-pos/internal/repository"
	"go-kasir-pos/internal/ws"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database; a named shared-cache DSN keeps the schema visible to all
	// connections while staying isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return db
}

func seedKasir(t *testing.T, db *gorm.DB, email string) *model.User {
	user := &model.User{
		Name:  "Test Kasir",
		Email: email,
		Role:  model.RoleKasir,
	}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed kasir: %v", err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price, buyPrice float64, stock int) *model.Product {
	var brand model.Brand
	if err := db.Where(model.Brand{Name: "Generic"}).Attrs(model.Brand{IsActive: true}).FirstOrCreate(&brand).Error; err != nil {
		t.Fatalf("Failed to seed brand: %v", err)
	}
	var category model.Category
	if err := db.Where(model.Category{Name: "Misc"}).Attrs(model.Category{IsActive: true}).FirstOrCreate(&category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	product := &model.Product{
		Name:       name,
		Price:      price,
		BuyPrice:   buyPrice,
		Stock:      stock,
		BrandID:    brand.ID,
		CategoryID: category.ID,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product %s: %v", name, err)
	}
	return product
}

func newSaleService(db *gorm.DB) SaleService {
	hub := ws.NewHub()
	go hub.Run()
	return NewSaleService(
		repository.NewProductRepo(db),
		repository.NewTransactionRepo(db),
		db,
		hub,
	)
}

func newProductService(db *gorm.DB) ProductService {
	return NewProductService(
		repository.NewProductRepo(db),
		repository.NewBrandRepo(db),
		repository.NewCategoryRepo(db),
		repository.NewTransactionRepo(db),
		db,
	)
}

func currentStock(t *testing.T, db *gorm.DB, productID interface{}) int {
	var product model.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("Failed to reload product: %v", err)
	}
	return product.Stock
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
