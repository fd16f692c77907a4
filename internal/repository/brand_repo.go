package repository

import (
	"go-kasir-pos/internal/model"

	"gorm.io/gorm"
)

type BrandRepository interface {
	FindAllActive() ([]model.Brand, error)
	FindOrCreate(tx *gorm.DB, name string) (*model.Brand, error)
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepo(db *gorm.DB) BrandRepository {
	return &brandRepo{db}
}

func (r *brandRepo) FindAllActive() ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&brands).Error
	return brands, err
}

// FindOrCreate resolves a brand by name, inserting it on first use. The
// unique index on name is the final guard against concurrent inserts.
// It runs on the caller's tx so product creation stays atomic.
func (r *brandRepo) FindOrCreate(tx *gorm.DB, name string) (*model.Brand, error) {
	var brand model.Brand
	err := tx.Where(model.Brand{Name: name}).
		Attrs(model.Brand{IsActive: true}).
		FirstOrCreate(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}
