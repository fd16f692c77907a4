package handler

import (
	"math"
	"strconv"
	"time"

	"go-kasir-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.SaleService
}

func NewTransactionHandler(s service.SaleService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Helper untuk ambil user ID dari JWT context (set by auth middleware)
func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CreateTransaction submits a sale
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.SubmitSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.SubmitSale(&req)
	if err != nil {
		if service.IsClientError(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create transaction"})
	}

	return c.Status(201).JSON(transaction)
}

// GetTransactions lists sales, newest first
// GET /api/v1/transactions?page=&limit=
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	transactions, total, err := h.service.GetTransactions(page, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetTransaction fetches one sale
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetTransactionByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(transaction)
}

// GetHistory lists the calling cashier's own sales
// GET /api/v1/transactions/history?startDate=&endDate=&search=
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	kasirID, ok := currentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	now := time.Now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	end := now

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid startDate, use YYYY-MM-DD"})
		}
		start = parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid endDate, use YYYY-MM-DD"})
		}
		// Inclusive end of day
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	history, err := h.service.GetHistory(kasirID, start, end, c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}
	return c.JSON(history)
}
