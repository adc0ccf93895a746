package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type HistoryController struct {
	history *services.SalesHistory
	reports *services.ReportService
}

func NewHistoryController(history *services.SalesHistory, reports *services.ReportService) *HistoryController {
	return &HistoryController{history: history, reports: reports}
}

// GetHistory -> sales history, optionally filtered to one date.
func (hc *HistoryController) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	if date := c.Query("date"); date != "" {
		records, err := hc.history.ByDate(ctx, date)
		if err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Sales history", records)
		return
	}

	records, err := hc.history.List(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales history", records)
}

// GetDailyReport -> per-table and per-category totals for one date
// (defaults to today).
func (hc *HistoryController) GetDailyReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	report, err := hc.reports.Daily(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily report", report)
}
