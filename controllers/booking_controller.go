package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-console/models"
	"hotel-console/services"
	"hotel-console/utils"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

type bookingListQuery struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=pending checked_in checked_out cancelled all"`
}

// GetBookings (GET /api/bookings)
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	var q bookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	f := services.BookingFilter{Search: q.Search}
	if q.Status != "all" {
		f.Status = models.BookingStatus(q.Status)
	}

	bookings, err := ctrl.BookingSvc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GetBooking (GET /api/bookings/:id)
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var draft services.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		bindError(c, err)
		return
	}
	booking, err := ctrl.BookingSvc.Create(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// UpdateBooking (PUT/PATCH /api/bookings/:id)
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var ch services.BookingChanges
	if err := c.ShouldBindJSON(&ch); err != nil {
		bindError(c, err)
		return
	}
	booking, err := ctrl.BookingSvc.Update(c.Request.Context(), id, ch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteBooking (DELETE /api/bookings/:id)
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
