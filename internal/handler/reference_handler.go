package handler

import (
	"go-kasir-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ReferenceHandler serves the brand/category reference data used by the
// product form. Read-only: rows are created by the product workflow.
type ReferenceHandler struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

func NewReferenceHandler(brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository) *ReferenceHandler {
	return &ReferenceHandler{brandRepo: brandRepo, categoryRepo: categoryRepo}
}

// GetBrands returns all active brands
// GET /api/v1/brands
func (h *ReferenceHandler) GetBrands(c *fiber.Ctx) error {
	brands, err := h.brandRepo.FindAllActive()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch brands"})
	}
	return c.JSON(brands)
}

// GetCategories returns all active categories
// GET /api/v1/categories
func (h *ReferenceHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.FindAllActive()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}
