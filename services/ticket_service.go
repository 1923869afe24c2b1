package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
)

// DefaultSalesLimit caps the ticket sale list when the caller sets no limit.
const DefaultSalesLimit = 100

type ScenicSpotInput struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	AdultPrice   *decimal.Decimal `json:"adult_price"`
	ChildPrice   *decimal.Decimal `json:"child_price"`
	SeniorPrice  *decimal.Decimal `json:"senior_price"`
	OpeningHours string           `json:"opening_hours"`
	ImageURL     string           `json:"image_url"`
	IsActive     *bool            `json:"is_active"`
}

type ScenicSpotChanges struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	AdultPrice   *decimal.Decimal `json:"adult_price"`
	ChildPrice   *decimal.Decimal `json:"child_price"`
	SeniorPrice  *decimal.Decimal `json:"senior_price"`
	OpeningHours *string          `json:"opening_hours"`
	ImageURL     *string          `json:"image_url"`
	IsActive     *bool            `json:"is_active"`
}

// TicketSaleDraft is a sale at the ticket counter. An empty VisitDate means today.
type TicketSaleDraft struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	AdultCount    int    `json:"adult_count"`
	ChildCount    int    `json:"child_count"`
	SeniorCount   int    `json:"senior_count"`
	VisitDate     string `json:"visit_date"`
}

// TicketService manages scenic spots and sells their tickets.
type TicketService struct {
	Store  *store.Store
	Cache  cache.Reader
	Exec   *Executor
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewTicketService(st *store.Store, c cache.Reader, logger *logrus.Logger) *TicketService {
	return &TicketService{
		Store:  st,
		Cache:  c,
		Exec:   NewExecutor(st, logger),
		Logger: logger,
		Now:    time.Now,
	}
}

func (s *TicketService) ListSpots(ctx context.Context) ([]models.ScenicSpot, error) {
	spots, err := cachedList(ctx, s.Cache, cache.ScenicSpots, s.Store.ScenicSpots, store.ListOptions{Order: "name"})
	if err != nil {
		return nil, fmt.Errorf("failed to list scenic spots: %w", err)
	}
	return spots, nil
}

func (s *TicketService) GetSpot(ctx context.Context, id uint) (models.ScenicSpot, error) {
	return s.Store.ScenicSpots.Get(ctx, id)
}

func priceOrZero(p *decimal.Decimal, field string) (decimal.Decimal, error) {
	if p == nil {
		return decimal.Zero, nil
	}
	if p.IsNegative() {
		return decimal.Zero, invalid("%s must not be negative", field)
	}
	return *p, nil
}

func (s *TicketService) CreateSpot(ctx context.Context, in ScenicSpotInput) (*models.ScenicSpot, error) {
	spot := models.ScenicSpot{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		OpeningHours: in.OpeningHours,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		IsActive:     in.IsActive,
	}
	if spot.Name == "" {
		return nil, invalid("name is required")
	}
	if in.AdultPrice == nil {
		return nil, invalid("adult_price is required")
	}
	var err error
	if spot.AdultPrice, err = priceOrZero(in.AdultPrice, "adult_price"); err != nil {
		return nil, err
	}
	if spot.ChildPrice, err = priceOrZero(in.ChildPrice, "child_price"); err != nil {
		return nil, err
	}
	if spot.SeniorPrice, err = priceOrZero(in.SeniorPrice, "senior_price"); err != nil {
		return nil, err
	}
	if spot.IsActive == nil {
		active := true
		spot.IsActive = &active
	}

	if err := s.Store.ScenicSpots.Create(ctx, &spot); err != nil {
		return nil, fmt.Errorf("failed to create scenic spot: %w", err)
	}
	s.Cache.Invalidate(cache.ScenicSpots)
	s.Logger.WithFields(logrus.Fields{"spot_id": spot.ID, "name": spot.Name}).Info("scenic spot created")
	return &spot, nil
}

func (s *TicketService) UpdateSpot(ctx context.Context, id uint, ch ScenicSpotChanges) (models.ScenicSpot, error) {
	fields := map[string]any{}
	if ch.Name != nil {
		name := strings.TrimSpace(*ch.Name)
		if name == "" {
			return models.ScenicSpot{}, invalid("name must not be empty")
		}
		fields["name"] = name
	}
	if ch.Description != nil {
		fields["description"] = *ch.Description
	}
	if ch.OpeningHours != nil {
		fields["opening_hours"] = *ch.OpeningHours
	}
	if ch.ImageURL != nil {
		fields["image_url"] = strings.TrimSpace(*ch.ImageURL)
	}
	if ch.IsActive != nil {
		fields["is_active"] = *ch.IsActive
	}
	prices := []struct {
		column string
		value  *decimal.Decimal
	}{
		{"adult_price", ch.AdultPrice},
		{"child_price", ch.ChildPrice},
		{"senior_price", ch.SeniorPrice},
	}
	for _, p := range prices {
		if p.value == nil {
			continue
		}
		v, err := priceOrZero(p.value, p.column)
		if err != nil {
			return models.ScenicSpot{}, err
		}
		fields[p.column] = v
	}

	if err := s.Store.ScenicSpots.Update(ctx, id, fields); err != nil {
		return models.ScenicSpot{}, fmt.Errorf("failed to update scenic spot %d: %w", id, err)
	}
	s.Cache.Invalidate(cache.ScenicSpots)
	return s.Store.ScenicSpots.Get(ctx, id)
}

func (s *TicketService) DeleteSpot(ctx context.Context, id uint) error {
	if err := s.Store.ScenicSpots.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete scenic spot %d: %w", id, err)
	}
	s.Cache.Invalidate(cache.ScenicSpots)
	return nil
}

func (s *TicketService) ListSales(ctx context.Context, limit int) ([]models.TicketSale, error) {
	if limit <= 0 {
		limit = DefaultSalesLimit
	}
	sales, err := cachedList(ctx, s.Cache, cache.TicketSales, s.Store.TicketSales, store.ListOptions{Order: "-created_at", Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket sales: %w", err)
	}
	return sales, nil
}

// Sell prices the tickets at the spot's current prices, records the sale as
// paid and books its revenue.
func (s *TicketService) Sell(ctx context.Context, spotID uint, d TicketSaleDraft) (*models.TicketSale, error) {
	if d.AdultCount < 0 || d.ChildCount < 0 || d.SeniorCount < 0 {
		return nil, invalid("ticket counts must not be negative")
	}
	if d.AdultCount+d.ChildCount+d.SeniorCount == 0 {
		return nil, ErrNoTickets
	}
	customer := strings.TrimSpace(d.CustomerName)
	if customer == "" {
		return nil, invalid("customer_name is required")
	}
	today := models.NewDate(s.Now())
	visit := today
	if strings.TrimSpace(d.VisitDate) != "" {
		var err error
		if visit, err = models.ParseDate(d.VisitDate); err != nil {
			return nil, invalid("visit_date: %v", err)
		}
	}

	spot, err := s.Store.ScenicSpots.Get(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenic spot %d: %w", spotID, err)
	}

	sale := &models.TicketSale{
		ScenicSpotID:   spot.ID,
		ScenicSpotName: spot.Name,
		CustomerName:   customer,
		CustomerPhone:  strings.TrimSpace(d.CustomerPhone),
		AdultCount:     d.AdultCount,
		ChildCount:     d.ChildCount,
		SeniorCount:    d.SeniorCount,
		VisitDate:      visit,
		TotalAmount:    TicketTotal(spot, d.AdultCount, d.ChildCount, d.SeniorCount),
	}

	outcome, err := s.Exec.Apply(ctx, PlanTicketSale(sale, today))
	s.Cache.Invalidate(outcome.Dirty...)
	if err != nil {
		return nil, fmt.Errorf("failed to sell tickets: %w", err)
	}

	s.Logger.WithFields(logrus.Fields{
		"sale_id": sale.ID,
		"spot":    sale.ScenicSpotName,
		"tickets": sale.TicketCount(),
		"total":   sale.TotalAmount.StringFixed(2),
	}).Info("tickets sold")
	return sale, nil
}
