package repository

import (
	"strings"

	"go-kasir-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	Save(tx *gorm.DB, product *model.Product) error
	Search(term string) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

// Search matches the term against product, brand, and category names.
// An empty term returns only the 10 newest products.
func (r *productRepo) Search(term string) ([]model.Product, error) {
	q := r.db.Model(&model.Product{}).
		Preload("Brand").
		Preload("Category").
		Preload("TransactionItems").
		Order("products.created_at DESC")

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		q = q.Limit(10)
	} else {
		pattern := "%" + term + "%"
		q = q.
			Joins("LEFT JOIN brands ON brands.id = products.brand_id").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(brands.name) LIKE ? OR LOWER(categories.name) LIKE ?",
				pattern, pattern, pattern)
	}

	var products []model.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Brand").Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindForUpdate reads the authoritative product row inside the caller's tx,
// holding a FOR UPDATE lock so concurrent sales serialize on the stock check.
// SQLite has no row locks; there the tx itself is the only isolation.
func (r *productRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product model.Product
	if err := q.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock runs on the caller's tx so the decrement commits (or rolls
// back) together with the sale rows.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock - ?", quantity)).Error
}

func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}
