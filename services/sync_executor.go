package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
)

// WriteIntent is one store write of a sync plan.
type WriteIntent interface {
	Apply(ctx context.Context, st *store.Store) error
	Describe() string
	Tag() cache.Tag
}

// Plan is an ordered list of writes. Each write runs only after the previous
// one succeeded.
type Plan []WriteIntent

// Referencer exposes the identifier a record received when it was created.
type Referencer interface {
	RefID() uint
}

type CreateBookingIntent struct {
	Booking *models.Booking
}

func (i CreateBookingIntent) Apply(ctx context.Context, st *store.Store) error {
	return st.Bookings.Create(ctx, i.Booking)
}

func (i CreateBookingIntent) Describe() string {
	return fmt.Sprintf("create booking for %s in room %s", i.Booking.GuestName, i.Booking.RoomNumber)
}

func (CreateBookingIntent) Tag() cache.Tag { return cache.Bookings }

type UpdateBookingIntent struct {
	ID     uint
	Fields map[string]any
}

func (i UpdateBookingIntent) Apply(ctx context.Context, st *store.Store) error {
	return st.Bookings.Update(ctx, i.ID, i.Fields)
}

func (i UpdateBookingIntent) Describe() string { return fmt.Sprintf("update booking %d", i.ID) }

func (UpdateBookingIntent) Tag() cache.Tag { return cache.Bookings }

type DeleteBookingIntent struct {
	ID uint
}

func (i DeleteBookingIntent) Apply(ctx context.Context, st *store.Store) error {
	return st.Bookings.Delete(ctx, i.ID)
}

func (i DeleteBookingIntent) Describe() string { return fmt.Sprintf("delete booking %d", i.ID) }

func (DeleteBookingIntent) Tag() cache.Tag { return cache.Bookings }

type SetRoomStatusIntent struct {
	RoomID uint
	Status models.RoomStatus
}

func (i SetRoomStatusIntent) Apply(ctx context.Context, st *store.Store) error {
	return st.Rooms.Update(ctx, i.RoomID, map[string]any{"status": i.Status})
}

func (i SetRoomStatusIntent) Describe() string {
	return fmt.Sprintf("set room %d to %s", i.RoomID, i.Status)
}

func (SetRoomStatusIntent) Tag() cache.Tag { return cache.Rooms }

// CreateTransactionIntent books a ledger entry. When Source is set, the entry
// references the identifier Source holds at apply time.
type CreateTransactionIntent struct {
	Transaction *models.Transaction
	Source      Referencer
}

func (i CreateTransactionIntent) Apply(ctx context.Context, st *store.Store) error {
	if i.Source != nil {
		ref := i.Source.RefID()
		i.Transaction.ReferenceID = &ref
	}
	return st.Transactions.Create(ctx, i.Transaction)
}

func (i CreateTransactionIntent) Describe() string {
	return fmt.Sprintf("record %s %s of %s", i.Transaction.Type, i.Transaction.Category, i.Transaction.Amount.StringFixed(2))
}

func (CreateTransactionIntent) Tag() cache.Tag { return cache.Transactions }

type CreateTicketSaleIntent struct {
	Sale *models.TicketSale
}

func (i CreateTicketSaleIntent) Apply(ctx context.Context, st *store.Store) error {
	return st.TicketSales.Create(ctx, i.Sale)
}

func (i CreateTicketSaleIntent) Describe() string {
	return fmt.Sprintf("sell %d tickets for %s", i.Sale.TicketCount(), i.Sale.ScenicSpotName)
}

func (CreateTicketSaleIntent) Tag() cache.Tag { return cache.TicketSales }

// Outcome reports how far a plan got.
type Outcome struct {
	Applied []WriteIntent
	Failed  WriteIntent
	// Dirty lists the collections touched by every attempted write.
	Dirty []cache.Tag
}

// PartialWriteError is returned when a write of a plan fails. Writes listed in
// Applied stay in the store.
type PartialWriteError struct {
	Applied []string
	Failed  string
	Err     error
}

func (e *PartialWriteError) Error() string {
	if len(e.Applied) == 0 {
		return fmt.Sprintf("%s: %v", e.Failed, e.Err)
	}
	return fmt.Sprintf("%s failed after [%s]: %v", e.Failed, strings.Join(e.Applied, "; "), e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// Executor applies plans against the store.
type Executor struct {
	Store  *store.Store
	Logger *logrus.Logger
}

func NewExecutor(st *store.Store, logger *logrus.Logger) *Executor {
	return &Executor{Store: st, Logger: logger}
}

func (e *Executor) Apply(ctx context.Context, plan Plan) (Outcome, error) {
	var out Outcome
	seen := map[cache.Tag]bool{}

	for step, intent := range plan {
		if tag := intent.Tag(); !seen[tag] {
			seen[tag] = true
			out.Dirty = append(out.Dirty, tag)
		}

		if err := intent.Apply(ctx, e.Store); err != nil {
			out.Failed = intent
			applied := make([]string, 0, len(out.Applied))
			for _, a := range out.Applied {
				applied = append(applied, a.Describe())
			}
			e.Logger.WithFields(logrus.Fields{
				"step":    step + 1,
				"steps":   len(plan),
				"failed":  intent.Describe(),
				"applied": applied,
			}).WithError(err).Error("sync plan stopped")
			return out, &PartialWriteError{Applied: applied, Failed: intent.Describe(), Err: err}
		}

		out.Applied = append(out.Applied, intent)
		e.Logger.WithFields(logrus.Fields{
			"step":  step + 1,
			"steps": len(plan),
		}).Debug(intent.Describe())
	}
	return out, nil
}
