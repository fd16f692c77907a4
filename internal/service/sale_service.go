package service

import (
	"fmt"
	"math"
	"time"

	"go-kasir-pos/internal/model"
	"go-kasir-pos/internal/repository"
	"go-kasir-pos/internal/ws"
	"go-kasir-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceTolerance is the allowed drift when comparing monetary amounts.
const PriceTolerance = 0.01

const defaultPaymentMethod = "Cash"

// SaleItemRequest is one proposed line of a sale. Price is the client-side
// unit price and is verified against the product record before commit.
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Price     float64   `json:"price" validate:"required,gt=0"`
	Notes     string    `json:"notes"`
}

type SubmitSaleRequest struct {
	BuyerName     string            `json:"buyer_name"`
	KasirID       uuid.UUID         `json:"kasir_id" validate:"uuid_required"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Total         float64           `json:"total" validate:"required,gt=0"`
	Discount      float64           `json:"discount" validate:"gte=0"`
	PaymentMethod string            `json:"payment_method"`
	Notes         string            `json:"notes"`
}

// HistoryItem is a flattened line of a past sale for the cashier history view.
type HistoryItem struct {
	ProductName string  `json:"product_name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type HistoryEntry struct {
	ID        uuid.UUID     `json:"id"`
	Total     float64       `json:"total"`
	CreatedAt time.Time     `json:"created_at"`
	BuyerName string        `json:"buyer_name"`
	KasirName string        `json:"kasir_name"`
	Items     []HistoryItem `json:"items"`
}

type SaleService interface {
	SubmitSale(req *SubmitSaleRequest) (*model.Transaction, error)
	GetTransactions(page, limit int) ([]model.Transaction, int64, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
	GetHistory(kasirID uuid.UUID, start, end time.Time, search string) ([]HistoryEntry, error)
}

type saleService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewSaleService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		productRepo: pRepo,
		txRepo:      tRepo,
		db:          db,
		wsHub:       hub,
	}
}

// SubmitSale validates a proposed sale against the authoritative product
// records and, if every check passes, atomically persists the transaction
// with its items and decrements product stock. Either everything commits or
// nothing does. Submitting the same payload twice creates two sales; there
// is no idempotency key.
func (s *saleService) SubmitSale(req *SubmitSaleRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Message(errs[0]))
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = defaultPaymentMethod
	}

	var saleID uuid.UUID
	type stockChange struct {
		ProductID uuid.UUID `json:"product_id"`
		Name      string    `json:"name"`
		Quantity  int       `json:"quantity"`
		NewStock  int       `json:"new_stock"`
	}
	changes := make([]stockChange, 0, len(req.Items))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		items := make([]model.TransactionItem, 0, len(req.Items))
		computed := 0.0

		for _, it := range req.Items {
			// Re-read with a row lock so a concurrent sale cannot pass
			// the stock check against the same units.
			product, err := s.productRepo.FindForUpdate(tx, it.ProductID)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
			}

			if product.Stock < it.Quantity {
				return fmt.Errorf("%w: product %s has only %d in stock",
					ErrInsufficientStock, product.Name, product.Stock)
			}

			// Stale client-side price means the cart was built before an
			// admin price change. Reject instead of silently repricing.
			if math.Abs(product.Price-it.Price) > PriceTolerance {
				return fmt.Errorf("%w: product %s", ErrPriceMismatch, product.Name)
			}

			subtotal := it.Price * float64(it.Quantity)
			computed += subtotal
			items = append(items, model.TransactionItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
				Subtotal:  subtotal,
				Notes:     it.Notes,
			})
			changes = append(changes, stockChange{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				NewStock:  product.Stock - it.Quantity,
			})
		}

		if math.Abs(computed-req.Total) > PriceTolerance {
			return ErrTotalMismatch
		}

		// Persist the recomputed total, not the declared one, so the stored
		// total always equals the sum of the item subtotals exactly.
		sale := &model.Transaction{
			BuyerName:     req.BuyerName,
			KasirID:       req.KasirID,
			Total:         computed,
			Discount:      req.Discount,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
			Items:         items,
		}
		if err := s.txRepo.Create(tx, sale); err != nil {
			return err
		}

		for _, it := range req.Items {
			if err := s.productRepo.DecrementStock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		saleID = sale.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.txRepo.FindByID(saleID)
	if err != nil {
		return nil, err
	}

	// Broadcast only after the commit so dashboards never see a rolled-back sale.
	go s.wsHub.PublishJSON(map[string]interface{}{
		"type":     "sale_completed",
		"sale_id":  created.ID,
		"kasir_id": created.KasirID,
		"total":    created.Total,
		"items":    changes,
	})

	return created, nil
}

func (s *saleService) GetTransactions(page, limit int) ([]model.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.txRepo.FindPage(page, limit)
}

func (s *saleService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.txRepo.FindByID(id)
}

// GetHistory returns the cashier's own sales in the range, flattened for the
// history view. Capped at 100 rows.
func (s *saleService) GetHistory(kasirID uuid.UUID, start, end time.Time, search string) ([]HistoryEntry, error) {
	transactions, err := s.txRepo.FindByKasir(kasirID, start, end, search, 100)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(transactions))
	for _, t := range transactions {
		entry := HistoryEntry{
			ID:        t.ID,
			Total:     t.Total,
			CreatedAt: t.CreatedAt,
			BuyerName: t.BuyerName,
		}
		if entry.BuyerName == "" {
			entry.BuyerName = "-"
		}
		if t.Kasir != nil {
			entry.KasirName = t.Kasir.Name
		}
		for _, item := range t.Items {
			hi := HistoryItem{
				Quantity: item.Quantity,
				Price:    item.Price,
				Subtotal: item.Subtotal,
			}
			if item.Product != nil {
				hi.ProductName = item.Product.Name
				hi.Brand = item.Product.Brand.Name
				hi.Category = item.Product.Category.Name
			}
			entry.Items = append(entry.Items, hi)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
