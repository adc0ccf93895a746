package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/store"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *services.TableService, *gorm.DB) {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&store.Document{}, &models.Product{}, &models.ActivityLog{}))

	products := []models.Product{
		{ID: "prod_1", Name: "Cerveza", Price: 10000, Category: models.CategoryDrink},
		{ID: "prod_2", Name: "Empanada", Price: 5000, Category: models.CategoryFood},
	}
	require.NoError(t, db.Create(&products).Error)

	st := store.NewGormStore(db)
	tables := services.NewTableService(st, 12)
	history := services.NewSalesHistory(st)
	activity := services.NewActivityService(db)
	checkout := services.NewCheckoutService(db, tables, history)

	tableCtrl := NewTableController(tables, activity)
	checkoutCtrl := NewCheckoutController(checkout, tables, activity)

	r := gin.New()
	authed := r.Group("", middlewares.AuthMiddleware())
	authed.GET("/tables/:number", tableCtrl.GetTable)
	authed.POST("/tables/:number/order", tableCtrl.CommitOrder)
	authed.POST("/tables/:number/release", tableCtrl.ReleaseTable)
	authed.POST("/tables/:number/checkout", middlewares.RequireRole("admin"), checkoutCtrl.CloseParty)

	return r, tables, db
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func staffToken(t *testing.T, name string) string {
	t.Helper()
	token, err := utils.GenerateToken(name, "staff")
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken("admin", "admin")
	require.NoError(t, err)
	return token
}

func TestCommitOrderEndpoint(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := staffToken(t, "X")

	w := doJSON(t, r, "POST", "/tables/3/order", token, gin.H{
		"items": gin.H{"prod_1": 2},
		"basis": models.DefaultTable(),
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order confirmed", resp.Message)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["occupied"])
	assert.Equal(t, "X", data["server"])
}

func TestCommitOrderRequiresAuth(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := doJSON(t, r, "POST", "/tables/3/order", "not-a-token", gin.H{
		"items": gin.H{"prod_1": 2},
		"basis": models.DefaultTable(),
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommitOrderEmptyRejected(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := staffToken(t, "X")

	w := doJSON(t, r, "POST", "/tables/3/order", token, gin.H{
		"items": gin.H{},
		"basis": models.DefaultTable(),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCommitOrderStaleBasisConflicts(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := doJSON(t, r, "POST", "/tables/3/order", staffToken(t, "X"), gin.H{
		"items": gin.H{"prod_1": 2},
		"basis": models.DefaultTable(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Y commits against the pre-claim state of the table.
	w = doJSON(t, r, "POST", "/tables/3/order", staffToken(t, "Y"), gin.H{
		"items": gin.H{"prod_2": 1},
		"basis": models.DefaultTable(),
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutRequiresAdmin(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := doJSON(t, r, "POST", "/tables/3/order", staffToken(t, "X"), gin.H{
		"items": gin.H{"prod_1": 2},
		"basis": models.DefaultTable(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/tables/3/checkout", staffToken(t, "X"), gin.H{
		"items": gin.H{"prod_1": 2},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "POST", "/tables/3/checkout", adminToken(t), gin.H{
		"items": gin.H{"prod_1": 2},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(20000), data["total"])
}

func TestReleaseEndpoint(t *testing.T) {
	r, tables, _ := setupTestRouter(t)
	token := staffToken(t, "X")

	w := doJSON(t, r, "POST", "/tables/3/order", token, gin.H{
		"items": gin.H{"prod_1": 2},
		"basis": models.DefaultTable(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/tables/3/release", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	record, err := tables.Table(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, record.Occupied)
	assert.Empty(t, record.CurrentOrder)
}

func TestGetTableInvalidNumber(t *testing.T) {
	r, _, _ := setupTestRouter(t)
	token := staffToken(t, "X")

	w := doJSON(t, r, "GET", "/tables/99", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "GET", "/tables/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
