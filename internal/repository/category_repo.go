package repository

import (
	"go-kasir-pos/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAllActive() ([]model.Category, error)
	FindOrCreate(tx *gorm.DB, name string) (*model.Category, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAllActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindOrCreate mirrors BrandRepository.FindOrCreate for categories.
func (r *categoryRepo) FindOrCreate(tx *gorm.DB, name string) (*model.Category, error) {
	var category model.Category
	err := tx.Where(model.Category{Name: name}).
		Attrs(model.Category{IsActive: true}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
