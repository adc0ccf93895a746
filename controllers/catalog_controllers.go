package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// CatalogController serves the product catalog read-only. Editing products
// is the admin back office's job, not this service's.
type CatalogController struct {
	db *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{db: db}
}

// GetProducts -> full catalog, grouped client-side by category.
func (cc *CatalogController) GetProducts(c *gin.Context) {
	var products []models.Product
	query := cc.db.Order("category, name")
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}
