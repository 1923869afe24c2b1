package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
)

var fixedNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(store.Models()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return store.New(db)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func newBookingService(st *store.Store, c cache.Reader) *BookingService {
	log, _ := newTestLogger()
	s := NewBookingService(st, c, log)
	s.Now = clock
	return s
}

func newTicketService(st *store.Store, c cache.Reader) *TicketService {
	log, _ := newTestLogger()
	s := NewTicketService(st, c, log)
	s.Now = clock
	return s
}

func seedRoom(t *testing.T, st *store.Store, number string, price int64, status models.RoomStatus) models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber:    number,
		RoomType:      models.RoomTypeStandard,
		PricePerNight: decimal.NewFromInt(price),
		Status:        status,
	}
	require.NoError(t, st.Rooms.Create(context.Background(), &room))
	return room
}

func seedSpot(t *testing.T, st *store.Store, name string, adult, child, senior int64) models.ScenicSpot {
	t.Helper()
	active := true
	spot := models.ScenicSpot{
		Name:        name,
		AdultPrice:  decimal.NewFromInt(adult),
		ChildPrice:  decimal.NewFromInt(child),
		SeniorPrice: decimal.NewFromInt(senior),
		IsActive:    &active,
	}
	require.NoError(t, st.ScenicSpots.Create(context.Background(), &spot))
	return spot
}

func roomStatus(t *testing.T, st *store.Store, id uint) models.RoomStatus {
	t.Helper()
	room, err := st.Rooms.Get(context.Background(), id)
	require.NoError(t, err)
	return room.Status
}

func ledger(t *testing.T, st *store.Store) []models.Transaction {
	t.Helper()
	txs, err := st.Transactions.List(context.Background(), store.ListOptions{Order: "id"})
	require.NoError(t, err)
	return txs
}

// failingUpdates rejects every update and delegates everything else.
type failingUpdates[T any] struct {
	store.Collection[T]
	err error
}

func (f failingUpdates[T]) Update(context.Context, uint, map[string]any) error { return f.err }

// failingCreates rejects every create and delegates everything else.
type failingCreates[T any] struct {
	store.Collection[T]
	err error
}

func (f failingCreates[T]) Create(context.Context, *T) error { return f.err }

func ptr[T any](v T) *T { return &v }
