package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	tables   *services.TableService
	activity *services.ActivityService
}

func NewCheckoutController(checkout *services.CheckoutService, tables *services.TableService, activity *services.ActivityService) *CheckoutController {
	return &CheckoutController{checkout: checkout, tables: tables, activity: activity}
}

type checkoutRequest struct {
	Items map[string]int `json:"items"`
}

// CloseParty -> record the payment and free the table. Admin only; the role
// gate sits on the route, the service itself does no authorization.
func (cc *CheckoutController) CloseParty(c *gin.Context) {
	tc := TableController{tables: cc.tables}
	number, ok := tc.tableNumber(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	actor := c.GetString("actor")

	record, err := cc.checkout.CloseParty(c.Request.Context(), number, req.Items, actor)
	switch {
	case errors.Is(err, services.ErrEmptyOrder):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	case errors.Is(err, services.ErrTableNotOccupied):
		utils.RespondError(c, http.StatusConflict, err)
		return
	case errors.Is(err, services.ErrPartialClose):
		// The sale is recorded; only the table reset failed. Tell the user
		// to retry the release, not the payment.
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	entry := cc.activity.Record(models.ActivityPayment, actor,
		fmt.Sprintf("Charged table %d: %s (party #%d)", number, utils.FormatCurrency(record.Total), record.PartyNumber))
	kds.BroadcastActivity(entry)
	kds.BroadcastPartyClosed(record)

	utils.InfoLogger.Printf("Table %d charged %s by %s", number, utils.FormatCurrency(record.Total), actor)
	utils.RespondJSON(c, http.StatusOK, "Party closed", record)
}
