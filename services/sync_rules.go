package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"hotel-console/models"
)

// Nights is the calendar-day difference between check-in and check-out,
// never negative.
func Nights(checkIn, checkOut models.Date) int {
	n := checkIn.DaysUntil(checkOut)
	if n < 0 {
		return 0
	}
	return n
}

// BookingTotal prices a stay at the room's nightly rate.
func BookingTotal(checkIn, checkOut models.Date, pricePerNight decimal.Decimal) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(Nights(checkIn, checkOut))))
}

// TicketTotal prices a sale at the spot's current prices.
func TicketTotal(spot models.ScenicSpot, adults, children, seniors int) decimal.Decimal {
	return spot.AdultPrice.Mul(decimal.NewFromInt(int64(adults))).
		Add(spot.ChildPrice.Mul(decimal.NewFromInt(int64(children)))).
		Add(spot.SeniorPrice.Mul(decimal.NewFromInt(int64(seniors))))
}

// PlanBookingCreate persists the booking, reserves or occupies its room and
// books the revenue of a paid stay.
func PlanBookingCreate(b *models.Booking, today models.Date) Plan {
	plan := Plan{CreateBookingIntent{Booking: b}}

	switch b.Status {
	case models.BookingCheckedIn:
		plan = append(plan, SetRoomStatusIntent{RoomID: b.RoomID, Status: models.RoomOccupied})
	case models.BookingPending:
		plan = append(plan, SetRoomStatusIntent{RoomID: b.RoomID, Status: models.RoomReserved})
	}

	if b.PaymentStatus == models.PaymentPaid && b.TotalAmount.IsPositive() {
		plan = append(plan, CreateTransactionIntent{
			Transaction: &models.Transaction{
				Type:            models.TransactionIncome,
				Category:        models.CategoryRoomBooking,
				Amount:          b.TotalAmount,
				Description:     fmt.Sprintf("Room %s - %s", b.RoomNumber, b.GuestName),
				TransactionDate: today,
				PaymentMethod:   models.PaymentCash,
			},
			Source: b,
		})
	}
	return plan
}

// PlanBookingUpdate persists the changes and frees or occupies the room when
// the status moves. A move back to pending leaves the room alone, and no
// ledger entry is ever touched on update.
func PlanBookingUpdate(id, roomID uint, fields map[string]any, status *models.BookingStatus) Plan {
	plan := Plan{UpdateBookingIntent{ID: id, Fields: fields}}
	if status == nil {
		return plan
	}

	switch {
	case status.Terminal():
		plan = append(plan, SetRoomStatusIntent{RoomID: roomID, Status: models.RoomAvailable})
	case *status == models.BookingCheckedIn:
		plan = append(plan, SetRoomStatusIntent{RoomID: roomID, Status: models.RoomOccupied})
	}
	return plan
}

// PlanBookingDelete removes the booking and releases the room if the booking
// still held it.
func PlanBookingDelete(b models.Booking) Plan {
	plan := Plan{DeleteBookingIntent{ID: b.ID}}
	if !b.Status.Terminal() {
		plan = append(plan, SetRoomStatusIntent{RoomID: b.RoomID, Status: models.RoomAvailable})
	}
	return plan
}

// PlanTicketSale records a paid sale and its revenue.
func PlanTicketSale(sale *models.TicketSale, today models.Date) Plan {
	sale.PaymentStatus = models.PaymentPaid
	return Plan{
		CreateTicketSaleIntent{Sale: sale},
		CreateTransactionIntent{
			Transaction: &models.Transaction{
				Type:            models.TransactionIncome,
				Category:        models.CategoryTicketSale,
				Amount:          sale.TotalAmount,
				Description:     fmt.Sprintf("%s - %s", sale.ScenicSpotName, sale.CustomerName),
				TransactionDate: today,
				PaymentMethod:   models.PaymentCash,
			},
			Source: sale,
		},
	}
}
