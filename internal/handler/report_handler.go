package handler

import (
	"errors"
	"time"

	"go-kasir-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDailyReport aggregates sales per day in a date range
// GET /api/v1/reports/daily?startDate=&endDate=
func (h *ReportHandler) GetDailyReport(c *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())

	// Invalid dates silently fall back to the current year, matching the
	// forgiving behavior of the report screen.
	if raw := c.Query("startDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			start = parsed
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			end = parsed.Add(24*time.Hour - time.Nanosecond)
		}
	}

	report, err := h.service.DailyReport(start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate report"})
	}
	return c.JSON(report)
}

// GetDailyStats returns the 30-day revenue/cost/profit series
// GET /api/v1/dashboard/daily-stats
func (h *ReportHandler) GetDailyStats(c *fiber.Ctx) error {
	stats, err := h.service.DailyStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily stats"})
	}
	return c.JSON(stats)
}

// GetRecentActivities returns the latest sales as an activity feed
// GET /api/v1/dashboard/recent-activities
func (h *ReportHandler) GetRecentActivities(c *fiber.Ctx) error {
	activities, err := h.service.RecentActivities()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch recent activities"})
	}
	return c.JSON(activities)
}
