package service

import (
	"fmt"

	"go-kasir-pos/internal/model"
	"go-kasir-pos/internal/repository"
	"go-kasir-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRequest carries product create/update input. Brand and category are
// referenced by name and resolved with an idempotent lookup-or-insert.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Brand       string  `json:"brand" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	BuyPrice    float64 `json:"buy_price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// ProductWithSales augments a product with the total units it has sold.
type ProductWithSales struct {
	model.Product
	TotalSold int `json:"total_sold"`
}

type ProductService interface {
	CreateProduct(req *ProductRequest) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	SearchProducts(term string) ([]ProductWithSales, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	txRepo       repository.TransactionRepository
	db           *gorm.DB
}

func NewProductService(
	pRepo repository.ProductRepository,
	bRepo repository.BrandRepository,
	cRepo repository.CategoryRepository,
	tRepo repository.TransactionRepository,
	db *gorm.DB,
) ProductService {
	return &productService{
		productRepo:  pRepo,
		brandRepo:    bRepo,
		categoryRepo: cRepo,
		txRepo:       tRepo,
		db:           db,
	}
}

func (s *productService) CreateProduct(req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Message(errs[0]))
	}

	if existing, _ := s.productRepo.FindByName(req.Name); existing != nil {
		return nil, ErrProductExists
	}

	var created *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		brand, err := s.brandRepo.FindOrCreate(tx, req.Brand)
		if err != nil {
			return err
		}
		category, err := s.categoryRepo.FindOrCreate(tx, req.Category)
		if err != nil {
			return err
		}

		product := &model.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			BuyPrice:    req.BuyPrice,
			Stock:       req.Stock,
			BrandID:     brand.ID,
			CategoryID:  category.ID,
		}
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}

		product.Brand = *brand
		product.Category = *category
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Message(errs[0]))
	}

	var updated *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindForUpdate(tx, id)
		if err != nil {
			return ErrProductNotFound
		}

		if req.Name != product.Name {
			if existing, _ := s.productRepo.FindByName(req.Name); existing != nil {
				return ErrProductExists
			}
		}

		brand, err := s.brandRepo.FindOrCreate(tx, req.Brand)
		if err != nil {
			return err
		}
		category, err := s.categoryRepo.FindOrCreate(tx, req.Category)
		if err != nil {
			return err
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		product.BuyPrice = req.BuyPrice
		product.Stock = req.Stock
		product.BrandID = brand.ID
		product.CategoryID = category.ID

		if err := s.productRepo.Save(tx, product); err != nil {
			return err
		}

		product.Brand = *brand
		product.Category = *category
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes a product unless it has been sold: transactions are
// immutable, so their items must keep resolving to a product row.
func (s *productService) DeleteProduct(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.productRepo.FindForUpdate(tx, id); err != nil {
			return ErrProductNotFound
		}

		count, err := s.txRepo.CountItemsByProduct(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrProductInUse
		}

		return s.productRepo.Delete(tx, id)
	})
}

func (s *productService) SearchProducts(term string) ([]ProductWithSales, error) {
	products, err := s.productRepo.Search(term)
	if err != nil {
		return nil, err
	}

	results := make([]ProductWithSales, len(products))
	for i, p := range products {
		sold := 0
		for _, item := range p.TransactionItems {
			sold += item.Quantity
		}
		p.TransactionItems = nil
		results[i] = ProductWithSales{Product: p, TotalSold: sold}
	}
	return results, nil
}
