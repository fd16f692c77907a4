package model

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `gorm:"not null" json:"price" validate:"required,gt=0"`     // unit sale price
	BuyPrice    float64 `gorm:"not null" json:"buy_price" validate:"required,gt=0"` // unit cost price
	Stock       int     `gorm:"default:0" json:"stock" validate:"gte=0"`

	BrandID    uint     `gorm:"index" json:"brand_id"`
	Brand      Brand    `json:"brand" validate:"-"`
	CategoryID uint     `gorm:"index" json:"category_id"`
	Category   Category `json:"category" validate:"-"`

	// Relasi
	TransactionItems []TransactionItem `json:"transaction_items,omitempty"`
}
