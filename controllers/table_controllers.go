package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type TableController struct {
	tables   *services.TableService
	activity *services.ActivityService
}

func NewTableController(tables *services.TableService, activity *services.ActivityService) *TableController {
	return &TableController{tables: tables, activity: activity}
}

func (tc *TableController) tableNumber(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 || number > tc.tables.TableCount() {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid table number"))
		return 0, false
	}
	return number, true
}

// GetAllTables -> every table record, for the floor overview.
func (tc *TableController) GetAllTables(c *gin.Context) {
	records, err := tc.tables.Tables(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", records)
}

// GetTable -> one fresh record. Devices call this when opening the table
// modal; the returned record is the basis they commit against later.
func (tc *TableController) GetTable(c *gin.Context) {
	number, ok := tc.tableNumber(c)
	if !ok {
		return
	}

	record, err := tc.tables.Table(c.Request.Context(), number)
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", record)
}

type commitOrderRequest struct {
	Items map[string]int     `json:"items"`
	Basis models.TableRecord `json:"basis"`
}

// CommitOrder -> claim the table (or confirm more items) with the staged
// order. 409 means someone else got there first: re-open the table.
func (tc *TableController) CommitOrder(c *gin.Context) {
	number, ok := tc.tableNumber(c)
	if !ok {
		return
	}

	var req commitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := c.GetString("actor")

	record, err := tc.tables.CommitOrder(c.Request.Context(), number, req.Items, req.Basis, actor)
	switch {
	case errors.Is(err, services.ErrEmptyOrder):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	case errors.Is(err, services.ErrTableConflict):
		utils.RespondError(c, http.StatusConflict, err)
		return
	case err != nil:
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	entry := tc.activity.Record(models.ActivityTableClaim, actor,
		fmt.Sprintf("Confirmed %d item(s) on table %d", len(req.Items), number))
	kds.BroadcastActivity(entry)
	kds.BroadcastTableUpdate(number, record)

	utils.InfoLogger.Printf("Table %d claimed by %s (%d items)", number, actor, len(req.Items))
	utils.RespondJSON(c, http.StatusOK, "Order confirmed", record)
}

// ReleaseTable -> clear the table without charging, dropping any
// uncommitted order.
func (tc *TableController) ReleaseTable(c *gin.Context) {
	number, ok := tc.tableNumber(c)
	if !ok {
		return
	}
	actor := c.GetString("actor")

	record, err := tc.tables.Release(c.Request.Context(), number, actor)
	switch {
	case errors.Is(err, services.ErrTableConflict):
		utils.RespondError(c, http.StatusConflict, err)
		return
	case err != nil:
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	entry := tc.activity.Record(models.ActivityTableRelease, actor,
		fmt.Sprintf("Cleared table %d without charging", number))
	kds.BroadcastActivity(entry)
	kds.BroadcastTableRelease(number, record)

	utils.InfoLogger.Printf("Table %d released by %s", number, actor)
	utils.RespondJSON(c, http.StatusOK, "Table released", record)
}
