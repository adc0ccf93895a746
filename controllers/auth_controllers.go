package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/utils"
)

// AuthController mints development tokens. Real credential checks live in
// the external auth service; this endpoint only exists so a local install
// can run standalone, and is disabled unless explicitly enabled.
type AuthController struct {
	devTokens bool
}

func NewAuthController(devTokens bool) *AuthController {
	return &AuthController{devTokens: devTokens}
}

type tokenRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
}

// IssueToken -> signed staff token for {name, role}.
func (ac *AuthController) IssueToken(c *gin.Context) {
	if !ac.devTokens {
		utils.RespondError(c, http.StatusForbidden, errors.New("token issuing disabled, use the auth service"))
		return
	}

	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token, err := utils.GenerateToken(req.Name, req.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token issued", gin.H{"token": token})
}
