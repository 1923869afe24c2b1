package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/services"
	"hotel-console/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details map[string]any  `json:"details"`
}

type testAPI struct {
	router *gin.Engine
	store  *store.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(store.Models()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	st := store.New(db)
	qc := cache.New()
	log, _ := test.NewNullLogger()
	now := func() time.Time { return time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC) }

	bookingSvc := services.NewBookingService(st, qc, log)
	bookingSvc.Now = now
	ticketSvc := services.NewTicketService(st, qc, log)
	ticketSvc.Now = now
	txSvc := services.NewTransactionService(st, qc, log)
	txSvc.Now = now
	reportSvc := services.NewReportService(st, qc, log)
	reportSvc.Now = now

	rc := NewRoomController(services.NewRoomService(st, qc, log))
	bc := NewBookingController(bookingSvc)
	tc := NewTicketController(ticketSvc)
	xc := NewTransactionController(txSvc)
	pc := NewReportController(reportSvc)

	r := gin.New()
	r.GET("/rooms", rc.GetRooms)
	r.POST("/rooms", rc.CreateRoom)
	r.GET("/rooms/:id", rc.GetRoom)
	r.PUT("/rooms/:id", rc.UpdateRoom)
	r.DELETE("/rooms/:id", rc.DeleteRoom)
	r.GET("/bookings", bc.GetBookings)
	r.POST("/bookings", bc.CreateBooking)
	r.PUT("/bookings/:id", bc.UpdateBooking)
	r.DELETE("/bookings/:id", bc.DeleteBooking)
	r.POST("/scenic-spots", tc.CreateScenicSpot)
	r.POST("/scenic-spots/:id/sales", tc.SellTickets)
	r.GET("/ticket-sales", tc.GetTicketSales)
	r.GET("/transactions", xc.GetTransactions)
	r.POST("/transactions", xc.CreateTransaction)
	r.GET("/transactions/export", xc.ExportTransactions)
	r.GET("/reports/dashboard", pc.GetDashboard)
	r.GET("/reports/finance", pc.GetFinance)

	return &testAPI{router: r, store: st}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestRoomEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/rooms", gin.H{"room_number": "101", "room_type": "deluxe", "price_per_night": "380"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Equal(t, models.RoomAvailable, room.Status)

	w, env = api.do(t, http.MethodPost, "/rooms", gin.H{"room_number": "101", "price_per_night": 200})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)

	w, _ = api.do(t, http.MethodPost, "/rooms", gin.H{"room_number": "102"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, http.MethodGet, "/rooms/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, http.MethodGet, "/rooms/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(t, http.MethodGet, "/rooms?status=broken", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = api.do(t, http.MethodPut, fmt.Sprintf("/rooms/%d", room.ID), gin.H{"status": "maintenance"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = api.do(t, http.MethodGet, "/rooms?status=maintenance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	assert.Len(t, rooms, 1)

	w, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/rooms/%d", room.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/rooms/%d", room.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingLifecycle(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/rooms", gin.H{"room_number": "101", "price_per_night": "200"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))

	w, env = api.do(t, http.MethodPost, "/bookings", gin.H{
		"guest_name":     "Alice",
		"guest_phone":    "13800000000",
		"room_id":        room.ID,
		"check_in_date":  "2024-05-10",
		"check_out_date": "2024-05-12",
		"status":         "checked_in",
		"payment_status": "paid",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var booking models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, "400", booking.TotalAmount.String())
	assert.Equal(t, "2024-05-12", booking.CheckOutDate.String())

	w, env = api.do(t, http.MethodGet, "/transactions?type=income", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txs []models.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &txs))
	require.Len(t, txs, 1)
	require.NotNil(t, txs[0].ReferenceID)
	assert.Equal(t, booking.ID, *txs[0].ReferenceID)

	w, _ = api.do(t, http.MethodPut, fmt.Sprintf("/bookings/%d", booking.ID), gin.H{"status": "checked_out"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := api.store.Rooms.Get(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, got.Status)

	w, _ = api.do(t, http.MethodPost, "/bookings", gin.H{"guest_name": "Bob", "guest_phone": "1", "room_id": 99,
		"check_in_date": "2024-05-10", "check_out_date": "2024-05-11"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/bookings/%d", booking.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketAndLedgerEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/scenic-spots", gin.H{"name": "Lakeside Garden", "adult_price": "100", "child_price": "50"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var spot models.ScenicSpot
	require.NoError(t, json.Unmarshal(env.Data, &spot))

	w, env = api.do(t, http.MethodPost, fmt.Sprintf("/scenic-spots/%d/sales", spot.ID), gin.H{"customer_name": "Bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "ticket")

	w, _ = api.do(t, http.MethodPost, "/scenic-spots/42/sales", gin.H{"customer_name": "Bob", "adult_count": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = api.do(t, http.MethodPost, fmt.Sprintf("/scenic-spots/%d/sales", spot.ID), gin.H{
		"customer_name": "Bob", "adult_count": 1, "child_count": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale models.TicketSale
	require.NoError(t, json.Unmarshal(env.Data, &sale))
	assert.Equal(t, "200", sale.TotalAmount.String())

	w, env = api.do(t, http.MethodGet, "/ticket-sales?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sales []models.TicketSale
	require.NoError(t, json.Unmarshal(env.Data, &sales))
	assert.Len(t, sales, 1)

	w, _ = api.do(t, http.MethodPost, "/transactions", gin.H{"type": "expense", "category": "ticket_sale", "amount": "10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, http.MethodPost, "/transactions", gin.H{"type": "expense", "category": "utilities", "amount": "35.5"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = api.do(t, http.MethodGet, "/reports/finance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum services.FinanceSummary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, services.RangeMonth, sum.Range)
	assert.Equal(t, "200", sum.TotalIncome.String())
	assert.Equal(t, "164.5", sum.NetProfit.String())

	w, _ = api.do(t, http.MethodGet, "/reports/finance?range=week", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = api.do(t, http.MethodGet, "/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash services.Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Equal(t, "200", dash.TodayIncome.String())

	w, _ = api.do(t, http.MethodGet, "/transactions/export?type=income", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ledger-")
	assert.NotZero(t, w.Body.Len())
}

func TestRespondErrorPartialWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, fmt.Errorf("failed to create booking: %w", &services.PartialWriteError{
		Applied: []string{"create booking for Alice in room 101"},
		Failed:  "set room 1 to occupied",
		Err:     errors.New("connection reset"),
	}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "set room 1 to occupied", env.Details["failed"])
	assert.Equal(t, "connection reset", env.Details["cause"])
	assert.Len(t, env.Details["applied"], 1)
}
