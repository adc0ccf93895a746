package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/store"
)

func SetupRouter(cfg config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	st := store.NewGormStore(db)
	tables := services.NewTableService(st, cfg.TableCount)
	history := services.NewSalesHistory(st)
	activity := services.NewActivityService(db)
	checkout := services.NewCheckoutService(db, tables, history)
	kitchen := services.NewKitchenService(db, tables)
	reports := services.NewReportService(history)

	tableCtrl := controllers.NewTableController(tables, activity)
	checkoutCtrl := controllers.NewCheckoutController(checkout, tables, activity)
	catalogCtrl := controllers.NewCatalogController(db)
	historyCtrl := controllers.NewHistoryController(history, reports)
	kitchenCtrl := controllers.NewKitchenController(kitchen)
	activityCtrl := controllers.NewActivityController(activity)
	authCtrl := controllers.NewAuthController(cfg.DevTokens)

	api := r.Group("/api/v1")

	api.POST("/auth/token", middlewares.NewStrictRateLimiter(), authCtrl.IssueToken)

	authed := api.Group("", middlewares.AuthMiddleware())
	{
		authed.GET("/tables", tableCtrl.GetAllTables)
		authed.GET("/tables/:number", tableCtrl.GetTable)
		authed.POST("/tables/:number/order", tableCtrl.CommitOrder)
		authed.POST("/tables/:number/release", tableCtrl.ReleaseTable)
		authed.POST("/tables/:number/checkout", middlewares.RequireRole("admin"), checkoutCtrl.CloseParty)

		authed.GET("/products", catalogCtrl.GetProducts)
		authed.GET("/history", historyCtrl.GetHistory)
		authed.GET("/reports/daily", historyCtrl.GetDailyReport)
		authed.GET("/kitchen", kitchenCtrl.GetBoard)
		authed.GET("/activity", middlewares.RequireRole("admin"), activityCtrl.GetRecent)
	}

	api.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.KDSHandler)

	return r
}
