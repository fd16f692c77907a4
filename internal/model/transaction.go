package model

import "github.com/google/uuid"

// Transaction is one completed checkout. It is created exactly once by the
// sale workflow and never updated or deleted afterwards.
type Transaction struct {
	BaseModel
	BuyerName     string    `gorm:"type:varchar(255)" json:"buyer_name,omitempty"`
	KasirID       uuid.UUID `gorm:"type:uuid;not null;index" json:"kasir_id" validate:"uuid_required"`
	Kasir         *User     `gorm:"foreignKey:KasirID" json:"kasir,omitempty" validate:"-"`
	Total         float64   `gorm:"not null" json:"total"`
	Discount      float64   `json:"discount,omitempty"`
	PaymentMethod string    `gorm:"type:varchar(20)" json:"payment_method"` // CASH, TRANSFER, QRIS...
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
}

// TransactionItem is one line of a Transaction. Price is a snapshot of the
// product price at sale time and stays valid across later price changes.
type TransactionItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product       *Product  `json:"product,omitempty"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Price         float64   `gorm:"not null" json:"price"`
	Subtotal      float64   `gorm:"not null" json:"subtotal"` // quantity * price, computed server-side
	Notes         string    `json:"notes,omitempty"`
}
