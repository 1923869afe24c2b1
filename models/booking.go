package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether the booking no longer holds its room.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GuestName     string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestPhone    string `gorm:"column:guest_phone;size:64" json:"guest_phone"`
	GuestIDNumber string `gorm:"column:guest_id_number;size:64" json:"guest_id_number,omitempty"`

	RoomID uint `gorm:"column:room_id;index" json:"room_id"`
	// RoomNumber is copied from the room when the booking is written and is not kept in sync.
	RoomNumber string `gorm:"column:room_number;size:50" json:"room_number"`

	CheckInDate  Date `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate Date `gorm:"column:check_out_date" json:"check_out_date"`

	Status        BookingStatus   `gorm:"column:status;size:32;default:pending;index" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"column:payment_status;size:32;default:unpaid" json:"payment_status"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"total_amount"`
	Notes         string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (b *Booking) RefID() uint { return b.ID }
