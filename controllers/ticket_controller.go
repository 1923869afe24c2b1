package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-console/services"
	"hotel-console/utils"
)

type TicketController struct {
	TicketSvc *services.TicketService
}

func NewTicketController(svc *services.TicketService) *TicketController {
	return &TicketController{TicketSvc: svc}
}

// GetScenicSpots (GET /api/scenic-spots)
func (ctrl *TicketController) GetScenicSpots(c *gin.Context) {
	spots, err := ctrl.TicketSvc.ListSpots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spots)
}

// GetScenicSpot (GET /api/scenic-spots/:id)
func (ctrl *TicketController) GetScenicSpot(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	spot, err := ctrl.TicketSvc.GetSpot(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spot)
}

// CreateScenicSpot (POST /api/scenic-spots)
func (ctrl *TicketController) CreateScenicSpot(c *gin.Context) {
	var in services.ScenicSpotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	spot, err := ctrl.TicketSvc.CreateSpot(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, spot)
}

// UpdateScenicSpot (PUT /api/scenic-spots/:id)
func (ctrl *TicketController) UpdateScenicSpot(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var ch services.ScenicSpotChanges
	if err := c.ShouldBindJSON(&ch); err != nil {
		bindError(c, err)
		return
	}
	spot, err := ctrl.TicketSvc.UpdateSpot(c.Request.Context(), id, ch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spot)
}

// DeleteScenicSpot (DELETE /api/scenic-spots/:id)
func (ctrl *TicketController) DeleteScenicSpot(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctrl.TicketSvc.DeleteSpot(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

// SellTickets (POST /api/scenic-spots/:id/sales)
func (ctrl *TicketController) SellTickets(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var draft services.TicketSaleDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		bindError(c, err)
		return
	}
	sale, err := ctrl.TicketSvc.Sell(c.Request.Context(), id, draft)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, sale)
}

type salesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// GetTicketSales (GET /api/ticket-sales)
func (ctrl *TicketController) GetTicketSales(c *gin.Context) {
	var q salesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	sales, err := ctrl.TicketSvc.ListSales(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sales)
}
