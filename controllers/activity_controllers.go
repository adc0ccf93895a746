package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type ActivityController struct {
	activity *services.ActivityService
}

func NewActivityController(activity *services.ActivityService) *ActivityController {
	return &ActivityController{activity: activity}
}

// GetRecent -> latest activity entries for the admin screen.
func (ac *ActivityController) GetRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := ac.activity.Recent(limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recent activity", entries)
}
