package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScenicSpot is an attraction the front desk sells tickets for.
// A zero child or senior price means that ticket category is not offered.
type ScenicSpot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string          `gorm:"column:name;size:255" json:"name"`
	Description  string          `gorm:"column:description;type:text" json:"description,omitempty"`
	AdultPrice   decimal.Decimal `gorm:"column:adult_price;type:decimal(12,2)" json:"adult_price"`
	ChildPrice   decimal.Decimal `gorm:"column:child_price;type:decimal(12,2)" json:"child_price"`
	SeniorPrice  decimal.Decimal `gorm:"column:senior_price;type:decimal(12,2)" json:"senior_price"`
	OpeningHours string          `gorm:"column:opening_hours;size:128" json:"opening_hours,omitempty"`
	ImageURL     string          `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	IsActive     *bool           `gorm:"column:is_active;default:true" json:"is_active"`
}

// Active treats an unset flag as active.
func (s ScenicSpot) Active() bool {
	return s.IsActive == nil || *s.IsActive
}

type TicketSale struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ScenicSpotID uint `gorm:"column:scenic_spot_id;index" json:"scenic_spot_id"`
	// ScenicSpotName is a snapshot of the spot name at sale time.
	ScenicSpotName string `gorm:"column:scenic_spot_name;size:255" json:"scenic_spot_name"`
	CustomerName   string `gorm:"column:customer_name;size:255" json:"customer_name"`
	CustomerPhone  string `gorm:"column:customer_phone;size:64" json:"customer_phone,omitempty"`

	AdultCount  int `gorm:"column:adult_count" json:"adult_count"`
	ChildCount  int `gorm:"column:child_count" json:"child_count"`
	SeniorCount int `gorm:"column:senior_count" json:"senior_count"`

	VisitDate     Date            `gorm:"column:visit_date" json:"visit_date"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"total_amount"`
	PaymentStatus PaymentStatus   `gorm:"column:payment_status;size:32" json:"payment_status"`
}

func (s *TicketSale) RefID() uint { return s.ID }

// TicketCount is the number of visitors covered by the sale.
func (s TicketSale) TicketCount() int {
	return s.AdultCount + s.ChildCount + s.SeniorCount
}
