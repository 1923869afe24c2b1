package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
)

// Range bounds ledger views by transaction date.
type Range string

const (
	RangeAll   Range = ""
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

func (r Range) Valid() bool {
	return r == RangeAll || r == RangeMonth || r == RangeYear || r == "all"
}

// Start returns the first day covered by the range. The bool is false for an
// unbounded range. A year covers the current month and the 11 before it.
func (r Range) Start(now time.Time) (models.Date, bool) {
	y, m, _ := now.Date()
	switch r {
	case RangeMonth:
		return models.NewDate(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)), true
	case RangeYear:
		return models.NewDate(time.Date(y, m-11, 1, 0, 0, 0, 0, time.UTC)), true
	}
	return models.Date{}, false
}

const (
	recentBookingCount = 5
	revenueSeriesDays  = 7
	trendMonths        = 6
)

type DailyIncome struct {
	Date   string          `json:"date"`
	Label  string          `json:"label"`
	Income decimal.Decimal `json:"income"`
}

type Dashboard struct {
	TotalRooms       int              `json:"total_rooms"`
	AvailableRooms   int              `json:"available_rooms"`
	OccupiedRooms    int              `json:"occupied_rooms"`
	OccupancyRate    int              `json:"occupancy_rate"`
	TodayIncome      decimal.Decimal  `json:"today_income"`
	TodayExpense     decimal.Decimal  `json:"today_expense"`
	TodayTicketSales decimal.Decimal  `json:"today_ticket_sales"`
	Revenue          []DailyIncome    `json:"revenue"`
	RecentBookings   []models.Booking `json:"recent_bookings"`
}

type CategoryTotal struct {
	Category models.TransactionCategory `json:"category"`
	Label    string                     `json:"label"`
	Amount   decimal.Decimal            `json:"amount"`
}

type MonthTotal struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type FinanceSummary struct {
	Range            Range           `json:"range"`
	Since            models.Date     `json:"since"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	IncomeByCategory []CategoryTotal `json:"income_by_category"`
	MonthlyTrend     []MonthTotal    `json:"monthly_trend"`
}

// BuildDashboard folds the current records into the front-desk overview.
// bookings must be ordered newest first.
func BuildDashboard(now time.Time, rooms []models.Room, bookings []models.Booking, txs []models.Transaction, sales []models.TicketSale) Dashboard {
	d := Dashboard{
		TotalRooms:       len(rooms),
		TodayIncome:      decimal.Zero,
		TodayExpense:     decimal.Zero,
		TodayTicketSales: decimal.Zero,
	}
	for _, r := range rooms {
		switch r.Status {
		case models.RoomAvailable:
			d.AvailableRooms++
		case models.RoomOccupied:
			d.OccupiedRooms++
		}
	}
	if d.TotalRooms > 0 {
		d.OccupancyRate = (d.OccupiedRooms*200 + d.TotalRooms) / (2 * d.TotalRooms)
	}

	today := models.NewDate(now).String()
	incomeByDay := map[string]decimal.Decimal{}
	for _, t := range txs {
		day := t.TransactionDate.String()
		switch t.Type {
		case models.TransactionIncome:
			incomeByDay[day] = incomeByDay[day].Add(t.Amount)
			if day == today {
				d.TodayIncome = d.TodayIncome.Add(t.Amount)
			}
		case models.TransactionExpense:
			if day == today {
				d.TodayExpense = d.TodayExpense.Add(t.Amount)
			}
		}
	}
	for _, s := range sales {
		if models.NewDate(s.CreatedAt.In(now.Location())).String() == today {
			d.TodayTicketSales = d.TodayTicketSales.Add(s.TotalAmount)
		}
	}

	d.Revenue = make([]DailyIncome, 0, revenueSeriesDays)
	for i := revenueSeriesDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := models.NewDate(day).String()
		d.Revenue = append(d.Revenue, DailyIncome{
			Date:   key,
			Label:  day.Format("01/02"),
			Income: incomeByDay[key].Add(decimal.Zero),
		})
	}

	n := len(bookings)
	if n > recentBookingCount {
		n = recentBookingCount
	}
	d.RecentBookings = append([]models.Booking{}, bookings[:n]...)
	return d
}

// BuildFinanceSummary totals the ledger for the range and trends the last six
// months over every transaction.
func BuildFinanceSummary(now time.Time, r Range, txs []models.Transaction) FinanceSummary {
	if r == "all" {
		r = RangeAll
	}
	since, bounded := r.Start(now)
	sum := FinanceSummary{
		Range:        r,
		Since:        since,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	byCategory := map[models.TransactionCategory]decimal.Decimal{}
	for _, t := range txs {
		if bounded && t.TransactionDate.Before(since) {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			sum.TotalIncome = sum.TotalIncome.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		case models.TransactionExpense:
			sum.TotalExpense = sum.TotalExpense.Add(t.Amount)
		}
	}
	sum.NetProfit = sum.TotalIncome.Sub(sum.TotalExpense)

	sum.IncomeByCategory = make([]CategoryTotal, 0, len(byCategory))
	for cat, amount := range byCategory {
		sum.IncomeByCategory = append(sum.IncomeByCategory, CategoryTotal{Category: cat, Label: cat.Label(), Amount: amount})
	}
	sort.Slice(sum.IncomeByCategory, func(i, j int) bool {
		a, b := sum.IncomeByCategory[i], sum.IncomeByCategory[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})

	y, m, _ := now.Date()
	sum.MonthlyTrend = make([]MonthTotal, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		start := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		mt := MonthTotal{Month: start.Format("2006-01"), Income: decimal.Zero, Expense: decimal.Zero}
		for _, t := range txs {
			day := models.NewDate(t.TransactionDate.Time()).Time()
			if day.Before(start) || !day.Before(end) {
				continue
			}
			switch t.Type {
			case models.TransactionIncome:
				mt.Income = mt.Income.Add(t.Amount)
			case models.TransactionExpense:
				mt.Expense = mt.Expense.Add(t.Amount)
			}
		}
		sum.MonthlyTrend = append(sum.MonthlyTrend, mt)
	}
	return sum
}

// ReportService serves the read-only dashboard and finance views.
type ReportService struct {
	Store  *store.Store
	Cache  cache.Reader
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewReportService(st *store.Store, c cache.Reader, logger *logrus.Logger) *ReportService {
	return &ReportService{Store: st, Cache: c, Logger: logger, Now: time.Now}
}

func (s *ReportService) Dashboard(ctx context.Context) (Dashboard, error) {
	rooms, err := cachedList(ctx, s.Cache, cache.Rooms, s.Store.Rooms, store.ListOptions{Order: "room_number"})
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load rooms: %w", err)
	}
	bookings, err := cachedList(ctx, s.Cache, cache.Bookings, s.Store.Bookings, store.ListOptions{Order: "-created_at"})
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load bookings: %w", err)
	}
	txs, err := cachedList(ctx, s.Cache, cache.Transactions, s.Store.Transactions, store.ListOptions{Order: "-transaction_date"})
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	sales, err := cachedList(ctx, s.Cache, cache.TicketSales, s.Store.TicketSales, store.ListOptions{Order: "-created_at"})
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load ticket sales: %w", err)
	}
	return BuildDashboard(s.Now(), rooms, bookings, txs, sales), nil
}

func (s *ReportService) Finance(ctx context.Context, r Range) (FinanceSummary, error) {
	if !r.Valid() {
		return FinanceSummary{}, invalid("unknown range %q", r)
	}
	txs, err := cachedList(ctx, s.Cache, cache.Transactions, s.Store.Transactions, store.ListOptions{Order: "-transaction_date"})
	if err != nil {
		return FinanceSummary{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return BuildFinanceSummary(s.Now(), r, txs), nil
}
