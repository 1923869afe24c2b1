package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
)

// BookingDraft is a booking as submitted by the front desk. Dates are "YYYY-MM-DD".
type BookingDraft struct {
	GuestName     string               `json:"guest_name"`
	GuestPhone    string               `json:"guest_phone"`
	GuestIDNumber string               `json:"guest_id_number"`
	RoomID        uint                 `json:"room_id"`
	CheckInDate   string               `json:"check_in_date"`
	CheckOutDate  string               `json:"check_out_date"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Notes         string               `json:"notes"`
}

// BookingChanges carries the fields of an edit. Nil fields are left unchanged.
type BookingChanges struct {
	GuestName     *string               `json:"guest_name"`
	GuestPhone    *string               `json:"guest_phone"`
	GuestIDNumber *string               `json:"guest_id_number"`
	RoomID        *uint                 `json:"room_id"`
	CheckInDate   *string               `json:"check_in_date"`
	CheckOutDate  *string               `json:"check_out_date"`
	Status        *models.BookingStatus `json:"status"`
	PaymentStatus *models.PaymentStatus `json:"payment_status"`
	Notes         *string               `json:"notes"`
}

type BookingFilter struct {
	// Search matches the guest name or the room number.
	Search string
	Status models.BookingStatus
}

// BookingService runs booking writes through the lifecycle sync rules.
type BookingService struct {
	Store  *store.Store
	Cache  cache.Reader
	Exec   *Executor
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewBookingService(st *store.Store, c cache.Reader, logger *logrus.Logger) *BookingService {
	return &BookingService{
		Store:  st,
		Cache:  c,
		Exec:   NewExecutor(st, logger),
		Logger: logger,
		Now:    time.Now,
	}
}

func (s *BookingService) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	bookings, err := cachedList(ctx, s.Cache, cache.Bookings, s.Store.Bookings, store.ListOptions{Order: "-created_at"})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	search := strings.TrimSpace(f.Search)
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if search != "" && !containsFold(b.GuestName, search) && !strings.Contains(b.RoomNumber, search) {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (models.Booking, error) {
	return s.Store.Bookings.Get(ctx, id)
}

func (s *BookingService) Create(ctx context.Context, d BookingDraft) (*models.Booking, error) {
	guest := strings.TrimSpace(d.GuestName)
	phone := strings.TrimSpace(d.GuestPhone)
	if guest == "" {
		return nil, invalid("guest_name is required")
	}
	if phone == "" {
		return nil, invalid("guest_phone is required")
	}
	if d.RoomID == 0 {
		return nil, invalid("room_id is required")
	}
	checkIn, err := models.ParseDate(d.CheckInDate)
	if err != nil {
		return nil, invalid("check_in_date: %v", err)
	}
	checkOut, err := models.ParseDate(d.CheckOutDate)
	if err != nil {
		return nil, invalid("check_out_date: %v", err)
	}

	status := d.Status
	if status == "" {
		status = models.BookingPending
	}
	if !status.Valid() {
		return nil, invalid("unknown booking status %q", status)
	}
	payment := d.PaymentStatus
	if payment == "" {
		payment = models.PaymentUnpaid
	}
	if !payment.Valid() {
		return nil, invalid("unknown payment_status %q", payment)
	}

	room, err := s.roomForBooking(ctx, d.RoomID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		GuestName:     guest,
		GuestPhone:    phone,
		GuestIDNumber: strings.TrimSpace(d.GuestIDNumber),
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Status:        status,
		PaymentStatus: payment,
		TotalAmount:   BookingTotal(checkIn, checkOut, room.PricePerNight),
		Notes:         d.Notes,
	}

	outcome, err := s.Exec.Apply(ctx, PlanBookingCreate(booking, models.NewDate(s.Now())))
	s.Cache.Invalidate(outcome.Dirty...)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"room":       booking.RoomNumber,
		"status":     booking.Status,
		"total":      booking.TotalAmount.StringFixed(2),
	}).Info("booking created")
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, id uint, ch BookingChanges) (models.Booking, error) {
	current, err := s.Store.Bookings.Get(ctx, id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to load booking %d: %w", id, err)
	}

	fields := map[string]any{}
	if ch.GuestName != nil {
		v := strings.TrimSpace(*ch.GuestName)
		if v == "" {
			return models.Booking{}, invalid("guest_name must not be empty")
		}
		fields["guest_name"] = v
	}
	if ch.GuestPhone != nil {
		v := strings.TrimSpace(*ch.GuestPhone)
		if v == "" {
			return models.Booking{}, invalid("guest_phone must not be empty")
		}
		fields["guest_phone"] = v
	}
	if ch.GuestIDNumber != nil {
		fields["guest_id_number"] = strings.TrimSpace(*ch.GuestIDNumber)
	}
	if ch.Notes != nil {
		fields["notes"] = *ch.Notes
	}
	if ch.Status != nil {
		if !ch.Status.Valid() {
			return models.Booking{}, invalid("unknown booking status %q", *ch.Status)
		}
		fields["status"] = *ch.Status
	}
	if ch.PaymentStatus != nil {
		if !ch.PaymentStatus.Valid() {
			return models.Booking{}, invalid("unknown payment_status %q", *ch.PaymentStatus)
		}
		fields["payment_status"] = *ch.PaymentStatus
	}

	// A new room or new dates reprice the stay at the room's current rate.
	checkIn, checkOut := current.CheckInDate, current.CheckOutDate
	if ch.CheckInDate != nil {
		if checkIn, err = models.ParseDate(*ch.CheckInDate); err != nil {
			return models.Booking{}, invalid("check_in_date: %v", err)
		}
		fields["check_in_date"] = checkIn
	}
	if ch.CheckOutDate != nil {
		if checkOut, err = models.ParseDate(*ch.CheckOutDate); err != nil {
			return models.Booking{}, invalid("check_out_date: %v", err)
		}
		fields["check_out_date"] = checkOut
	}
	roomID := current.RoomID
	if ch.RoomID != nil && *ch.RoomID != 0 {
		roomID = *ch.RoomID
	}
	if ch.RoomID != nil || ch.CheckInDate != nil || ch.CheckOutDate != nil {
		room, err := s.roomForBooking(ctx, roomID)
		if err != nil {
			return models.Booking{}, err
		}
		fields["room_id"] = room.ID
		fields["room_number"] = room.RoomNumber
		fields["total_amount"] = BookingTotal(checkIn, checkOut, room.PricePerNight)
	}

	outcome, err := s.Exec.Apply(ctx, PlanBookingUpdate(id, roomID, fields, ch.Status))
	s.Cache.Invalidate(outcome.Dirty...)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to update booking %d: %w", id, err)
	}

	s.Logger.WithFields(logrus.Fields{"booking_id": id, "fields": len(fields)}).Info("booking updated")
	return s.Store.Bookings.Get(ctx, id)
}

func (s *BookingService) Delete(ctx context.Context, id uint) error {
	booking, err := s.Store.Bookings.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load booking %d: %w", id, err)
	}

	outcome, err := s.Exec.Apply(ctx, PlanBookingDelete(booking))
	s.Cache.Invalidate(outcome.Dirty...)
	if err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}

	s.Logger.WithFields(logrus.Fields{"booking_id": id, "status": booking.Status}).Info("booking deleted")
	return nil
}

func (s *BookingService) roomForBooking(ctx context.Context, roomID uint) (models.Room, error) {
	room, err := s.Store.Rooms.Get(ctx, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Room{}, invalid("room %d does not exist", roomID)
	}
	if err != nil {
		return models.Room{}, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	return room, nil
}
