package service

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"go-kasir-pos/internal/repository"
)

// BestSeller is the single best-selling product of one day.
type BestSeller struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DailyReportEntry aggregates one day of sales for the report view.
type DailyReportEntry struct {
	Date         string      `json:"date"`
	TotalSales   float64     `json:"total_sales"`
	Transactions int         `json:"transactions"`
	BestSeller   *BestSeller `json:"best_seller"`
}

// DailyStat is one day of the 30-day dashboard series.
type DailyStat struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
}

type DailyStatsResponse struct {
	DailyData []DailyStat `json:"daily_data"`
	Summary   struct {
		Revenue      float64 `json:"revenue_30d"`
		Transactions int     `json:"transactions_30d"`
		Profit       float64 `json:"profit_30d"`
	} `json:"summary"`
}

// Activity is one line of the recent-activity feed.
type Activity struct {
	Time  string `json:"time"`
	Desc  string `json:"desc"`
	Value string `json:"value"`
}

type ReportService interface {
	DailyReport(start, end time.Time) ([]DailyReportEntry, error)
	DailyStats() (*DailyStatsResponse, error)
	RecentActivities() ([]Activity, error)
}

type reportService struct {
	txRepo repository.TransactionRepository
}

func NewReportService(txRepo repository.TransactionRepository) ReportService {
	return &reportService{txRepo: txRepo}
}

// DailyReport aggregates sales per calendar day across the range: revenue,
// transaction count, and the largest single line item as the best seller.
func (s *reportService) DailyReport(start, end time.Time) ([]DailyReportEntry, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	transactions, err := s.txRepo.FindInRange(start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailyReportEntry)
	for _, t := range transactions {
		day := t.CreatedAt.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &DailyReportEntry{Date: day}
			byDay[day] = entry
		}

		entry.TotalSales += t.Total
		entry.Transactions++

		for _, item := range t.Items {
			if item.Product == nil {
				continue
			}
			if entry.BestSeller == nil || item.Quantity > entry.BestSeller.Quantity {
				entry.BestSeller = &BestSeller{Name: item.Product.Name, Quantity: item.Quantity}
			}
		}
	}

	report := make([]DailyReportEntry, 0, len(byDay))
	for _, entry := range byDay {
		report = append(report, *entry)
	}
	sort.Slice(report, func(i, j int) bool {
		return report[i].Date > report[j].Date
	})
	return report, nil
}

// DailyStats merges the per-day revenue and cost-of-goods aggregations over
// the last 30 days and derives profit.
func (s *reportService) DailyStats() (*DailyStatsResponse, error) {
	since := time.Now().AddDate(0, 0, -30)

	sales, err := s.txRepo.SalesByDay(since)
	if err != nil {
		return nil, err
	}
	costs, err := s.txRepo.CostByDay(since)
	if err != nil {
		return nil, err
	}

	costByDate := make(map[string]float64, len(costs))
	for _, c := range costs {
		costByDate[c.Date] = c.Cost
	}

	resp := &DailyStatsResponse{DailyData: make([]DailyStat, 0, len(sales))}
	for _, day := range sales {
		stat := DailyStat{
			Date:         day.Date,
			Revenue:      day.Revenue,
			Transactions: day.Transactions,
			Cost:         costByDate[day.Date],
		}
		stat.Profit = stat.Revenue - stat.Cost

		resp.DailyData = append(resp.DailyData, stat)
		resp.Summary.Revenue += stat.Revenue
		resp.Summary.Transactions += stat.Transactions
		resp.Summary.Profit += stat.Profit
	}
	return resp, nil
}

func (s *reportService) RecentActivities() ([]Activity, error) {
	transactions, err := s.txRepo.FindRecent(10)
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(transactions))
	for _, t := range transactions {
		names := ""
		for i, item := range t.Items {
			if item.Product == nil {
				continue
			}
			if i > 0 {
				names += ", "
			}
			names += item.Product.Name
		}

		activities = append(activities, Activity{
			Time:  timeAgo(t.CreatedAt),
			Desc:  fmt.Sprintf("Sale of %d item(s): %s", len(t.Items), names),
			Value: formatRupiah(t.Total),
		})
	}
	return activities, nil
}

// formatRupiah renders an amount the way receipts print it: "Rp 1.250.000".
func formatRupiah(amount float64) string {
	digits := strconv.FormatInt(int64(amount), 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
