package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go-kasir-pos/internal/model"
	"go-kasir-pos/internal/repository"

	"gorm.io/gorm"
)

func newReportService(db *gorm.DB) ReportService {
	return NewReportService(repository.NewTransactionRepo(db))
}

// backdate moves a transaction's creation timestamp, for aggregation tests.
func backdate(t *testing.T, db *gorm.DB, transaction *model.Transaction, at time.Time) {
	t.Helper()
	err := db.Model(&model.Transaction{}).
		Where("id = ?", transaction.ID).
		Update("created_at", at).Error
	if err != nil {
		t.Fatalf("Failed to backdate transaction: %v", err)
	}
}

func TestDailyReportAggregatesPerDay(t *testing.T) {
	db := setupTestDB(t)
	saleSvc := newSaleService(db)
	reportSvc := newReportService(db)
	kasir := seedKasir(t, db, "kasir@example.com")
	kopi := seedProduct(t, db, "Kopi Susu", 1000, 600, 100)
	roti := seedProduct(t, db, "Roti Bakar", 12000, 8000, 100)

	submit := func(product *model.Product, qty int) *model.Transaction {
		t.Helper()
		sale, err := saleSvc.SubmitSale(&SubmitSaleRequest{
			KasirID: kasir.ID,
			Items: []SaleItemRequest{
				{ProductID: product.ID, Quantity: qty, Price: product.Price},
			},
			Total: product.Price * float64(qty),
		})
		if err != nil {
			t.Fatalf("SubmitSale failed: %v", err)
		}
		return sale
	}

	now := time.Now()
	dayOne := now.AddDate(0, 0, -2)

	backdate(t, db, submit(kopi, 2), dayOne)   // 2000
	backdate(t, db, submit(roti, 1), dayOne)   // 12000
	submit(kopi, 5)                            // today, 5000

	report, err := reportSvc.DailyReport(now.AddDate(0, 0, -7), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("DailyReport failed: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("Expected 2 report days, got %d", len(report))
	}

	// Sorted newest first.
	today := report[0]
	if today.Date != now.Format("2006-01-02") {
		t.Errorf("Expected newest day first, got %s", today.Date)
	}
	if today.TotalSales != 5000 || today.Transactions != 1 {
		t.Errorf("Unexpected today aggregate: %+v", today)
	}
	if today.BestSeller == nil || today.BestSeller.Name != "Kopi Susu" || today.BestSeller.Quantity != 5 {
		t.Errorf("Unexpected best seller: %+v", today.BestSeller)
	}

	past := report[1]
	if past.TotalSales != 14000 || past.Transactions != 2 {
		t.Errorf("Unexpected past-day aggregate: %+v", past)
	}
	// Largest single line item wins, not largest revenue.
	if past.BestSeller == nil || past.BestSeller.Name != "Kopi Susu" || past.BestSeller.Quantity != 2 {
		t.Errorf("Unexpected past-day best seller: %+v", past.BestSeller)
	}
}

func TestDailyReportInvalidRange(t *testing.T) {
	db := setupTestDB(t)
	reportSvc := newReportService(db)

	now := time.Now()
	_, err := reportSvc.DailyReport(now, now.AddDate(0, 0, -1))
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestDailyStats(t *testing.T) {
	db := setupTestDB(t)
	saleSvc := newSaleService(db)
	reportSvc := newReportService(db)
	kasir := seedKasir(t, db, "kasir@example.com")
	product := seedProduct(t, db, "Kopi Susu", 1000, 600, 100)

	_, err := saleSvc.SubmitSale(&SubmitSaleRequest{
		KasirID: kasir.ID,
		Items: []SaleItemRequest{
			{ProductID: product.ID, Quantity: 2, Price: 1000},
		},
		Total: 2000,
	})
	if err != nil {
		t.Fatalf("SubmitSale failed: %v", err)
	}

	stats, err := reportSvc.DailyStats()
	if err != nil {
		t.Fatalf("DailyStats failed: %v", err)
	}
	if len(stats.DailyData) != 1 {
		t.Fatalf("Expected 1 day of stats, got %d", len(stats.DailyData))
	}

	day := stats.DailyData[0]
	if day.Revenue != 2000 || day.Transactions != 1 {
		t.Errorf("Unexpected revenue row: %+v", day)
	}
	if day.Cost != 1200 { // 2 * buy price 600
		t.Errorf("Expected cost 1200, got %v", day.Cost)
	}
	if day.Profit != 800 {
		t.Errorf("Expected profit 800, got %v", day.Profit)
	}

	if stats.Summary.Revenue != 2000 || stats.Summary.Transactions != 1 || stats.Summary.Profit != 800 {
		t.Errorf("Unexpected summary: %+v", stats.Summary)
	}
}

func TestRecentActivities(t *testing.T) {
	db := setupTestDB(t)
	saleSvc := newSaleService(db)
	reportSvc := newReportService(db)
	kasir := seedKasir(t, db, "kasir@example.com")
	product := seedProduct(t, db, "Kopi Susu", 1000, 600, 100)

	_, err := saleSvc.SubmitSale(&SubmitSaleRequest{
		KasirID: kasir.ID,
		Items: []SaleItemRequest{
			{ProductID: product.ID, Quantity: 3, Price: 1000},
		},
		Total: 3000,
	})
	if err != nil {
		t.Fatalf("SubmitSale failed: %v", err)
	}

	activities, err := reportSvc.RecentActivities()
	if err != nil {
		t.Fatalf("RecentActivities failed: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("Expected 1 activity, got %d", len(activities))
	}
	if !strings.Contains(activities[0].Desc, "Kopi Susu") {
		t.Errorf("Expected product name in description, got %q", activities[0].Desc)
	}
	if activities[0].Value != "Rp 3.000" {
		t.Errorf("Expected Rp 3.000, got %q", activities[0].Value)
	}
	if activities[0].Time != "just now" {
		t.Errorf("Expected relative time 'just now', got %q", activities[0].Time)
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{3000, "Rp 3.000"},
		{1250000, "Rp 1.250.000"},
		{-7500, "-Rp 7.500"},
	}
	for _, c := range cases {
		if got := formatRupiah(c.in); got != c.want {
			t.Errorf("formatRupiah(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
