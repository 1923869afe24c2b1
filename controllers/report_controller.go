package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-console/services"
	"hotel-console/utils"
)

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

// GetDashboard (GET /api/reports/dashboard)
func (ctrl *ReportController) GetDashboard(c *gin.Context) {
	d, err := ctrl.ReportSvc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, d)
}

type financeQuery struct {
	Range string `form:"range" binding:"omitempty,oneof=month year all"`
}

// GetFinance (GET /api/reports/finance)
func (ctrl *ReportController) GetFinance(c *gin.Context) {
	var q financeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	r := services.Range(q.Range)
	if q.Range == "" {
		r = services.RangeMonth
	}
	sum, err := ctrl.ReportSvc.Finance(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sum)
}
