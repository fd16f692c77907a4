package repository

import (
	"strings"
	"time"

	"go-kasir-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindPage(page, limit int) ([]model.Transaction, int64, error)
	FindByKasir(kasirID uuid.UUID, start, end time.Time, search string, limit int) ([]model.Transaction, error)
	FindInRange(start, end time.Time) ([]model.Transaction, error)
	FindRecent(limit int) ([]model.Transaction, error)
	CountItemsByProduct(productID uuid.UUID) (int64, error)
	SalesByDay(since time.Time) ([]DailySales, error)
	CostByDay(since time.Time) ([]DailyCost, error)
}

// DailySales is one row of the per-day revenue aggregation.
type DailySales struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// DailyCost is one row of the per-day cost-of-goods aggregation.
type DailyCost struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("Kasir").
		Preload("Items.Product").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) FindPage(page, limit int) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Kasir").
		Preload("Items.Product").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Model(&model.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// FindByKasir returns one cashier's sales in a date range, optionally
// filtered by buyer name or product name.
func (r *transactionRepo) FindByKasir(kasirID uuid.UUID, start, end time.Time, search string, limit int) ([]model.Transaction, error) {
	q := r.db.
		Preload("Kasir").
		Preload("Items.Product.Brand").
		Preload("Items.Product.Category").
		Where("kasir_id = ? AND created_at BETWEEN ? AND ?", kasirID, start, end).
		Order("created_at DESC").
		Limit(limit)

	search = strings.ToLower(strings.TrimSpace(search))
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			`LOWER(buyer_name) LIKE ? OR id IN (
				SELECT ti.transaction_id FROM transaction_items ti
				JOIN products p ON p.id = ti.product_id
				WHERE LOWER(p.name) LIKE ?)`,
			pattern, pattern)
	}

	var transactions []model.Transaction
	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindInRange(start, end time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Items.Product").
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Kasir").
		Preload("Items.Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) CountItemsByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.TransactionItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *transactionRepo) SalesByDay(since time.Time) ([]DailySales, error) {
	var results []DailySales

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`DATE(created_at) as date,
			COALESCE(SUM(total), 0) as revenue,
			COUNT(id) as transactions`).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row DailySales
		if err := rows.Scan(&row.Date, &row.Revenue, &row.Transactions); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *transactionRepo) CostByDay(since time.Time) ([]DailyCost, error) {
	var results []DailyCost

	rows, err := r.db.Table("transaction_items").
		Select(`DATE(transactions.created_at) as date,
			COALESCE(SUM(transaction_items.quantity * products.buy_price), 0) as cost`).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Joins("JOIN products ON products.id = transaction_items.product_id").
		Where("transactions.created_at >= ?", since).
		Group("DATE(transactions.created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row DailyCost
		if err := rows.Scan(&row.Date, &row.Cost); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
