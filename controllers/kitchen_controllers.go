package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type KitchenController struct {
	kitchen *services.KitchenService
}

func NewKitchenController(kitchen *services.KitchenService) *KitchenController {
	return &KitchenController{kitchen: kitchen}
}

// GetBoard -> occupied tables with pending food lines, longest wait first.
func (kc *KitchenController) GetBoard(c *gin.Context) {
	tickets, err := kc.kitchen.Board(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen board", tickets)
}
