package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type TransactionCategory string

const (
	CategoryRoomBooking  TransactionCategory = "room_booking"
	CategoryTicketSale   TransactionCategory = "ticket_sale"
	CategoryFoodBeverage TransactionCategory = "food_beverage"
	CategorySpaService   TransactionCategory = "spa_service"
	CategorySalary       TransactionCategory = "salary"
	CategoryUtilities    TransactionCategory = "utilities"
	CategoryMaintenance  TransactionCategory = "maintenance"
	CategorySupplies     TransactionCategory = "supplies"
	CategoryMarketing    TransactionCategory = "marketing"
	CategoryOther        TransactionCategory = "other"
)

var categoriesByType = map[TransactionType][]TransactionCategory{
	TransactionIncome: {
		CategoryRoomBooking, CategoryTicketSale, CategoryFoodBeverage, CategorySpaService, CategoryOther,
	},
	TransactionExpense: {
		CategorySalary, CategoryUtilities, CategoryMaintenance, CategorySupplies, CategoryMarketing, CategoryOther,
	},
}

// CategoriesFor returns the category vocabulary of a transaction type.
func CategoriesFor(t TransactionType) []TransactionCategory {
	return categoriesByType[t]
}

// AllowsCategory reports whether c belongs to the vocabulary of t.
func (t TransactionType) AllowsCategory(c TransactionCategory) bool {
	for _, allowed := range categoriesByType[t] {
		if allowed == c {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentWechat       PaymentMethod = "wechat"
	PaymentAlipay       PaymentMethod = "alipay"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentWechat, PaymentAlipay, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}

type Transaction struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Type        TransactionType     `gorm:"column:type;size:16;index" json:"type"`
	Category    TransactionCategory `gorm:"column:category;size:32" json:"category"`
	Amount      decimal.Decimal     `gorm:"column:amount;type:decimal(12,2)" json:"amount"`
	Description string              `gorm:"column:description;size:255" json:"description"`
	// ReferenceID points at the booking or ticket sale that produced the entry. It is not a foreign key.
	ReferenceID     *uint         `gorm:"column:reference_id;index" json:"reference_id,omitempty"`
	TransactionDate Date          `gorm:"column:transaction_date;index" json:"transaction_date"`
	PaymentMethod   PaymentMethod `gorm:"column:payment_method;size:32;default:cash" json:"payment_method"`
}

var categoryLabels = map[TransactionCategory]string{
	CategoryRoomBooking:  "Room revenue",
	CategoryTicketSale:   "Ticket revenue",
	CategoryFoodBeverage: "Food & beverage",
	CategorySpaService:   "Services",
	CategorySalary:       "Salaries",
	CategoryUtilities:    "Utilities",
	CategoryMaintenance:  "Maintenance",
	CategorySupplies:     "Supplies",
	CategoryMarketing:    "Marketing",
	CategoryOther:        "Other",
}

// Label is the display name of the category.
func (c TransactionCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
