package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/controllers"
	"github.com/furylabs/furycell/middleware"
	"github.com/furylabs/furycell/services"
	"github.com/furylabs/furycell/storage"
	"github.com/furylabs/furycell/utils"
)

// SetupRouter wires routes, middlewares, services and controllers.
func SetupRouter(store *storage.Store) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	progression := services.NewProgression(store, cfg)
	missionSvc := services.NewMissionService(cfg)
	activity := services.NewActivityLog(store, cfg.MaxHistoryEntries, utils.Sugar)
	tagSvc := services.NewTagService(store, progression)
	shopSvc := services.NewShopService(store, progression, cfg, nil)

	missionController := controllers.NewMissionController(store, missionSvc, progression, activity, cfg)
	profileController := controllers.NewProfileController(store, progression, tagSvc, activity)
	shopController := controllers.NewShopController(shopSvc, progression, activity)
	statsController := controllers.NewStatsController(store)

	api := r.Group("/api/v1")

	api.GET("/missions", missionController.ListMissions)
	api.GET("/stats", statsController.GetStats)
	api.GET("/history", profileController.GetHistory)
	api.GET("/profile", profileController.GetProfile)
	api.GET("/shop", shopController.GetShop)

	mutating := api.Group("")
	mutating.Use(middleware.RateLimitMiddleware())

	mutating.POST("/missions", missionController.CreateMission)
	mutating.PUT("/missions/:index", missionController.UpdateMission)
	mutating.DELETE("/missions/:index", missionController.DeleteMission)
	mutating.POST("/missions/:index/start", missionController.StartMission)
	mutating.POST("/missions/:index/complete", missionController.CompleteMission)
	mutating.POST("/missions/:index/progress", missionController.RegisterProgress)
	mutating.POST("/missions/:index/move/:direction", missionController.MoveMission)

	mutating.POST("/tags", profileController.CreateTag)
	mutating.DELETE("/tags/:name", profileController.DeleteTag)
	mutating.DELETE("/tags", profileController.DeleteAllTags)

	mutating.POST("/shop/purchase/:itemId", shopController.Purchase)
	mutating.POST("/shop/equip/:itemId", shopController.Equip)

	mutating.POST("/reset/progress", profileController.ResetProgress)
	mutating.POST("/reset/data", profileController.ResetData)
	mutating.POST("/reset/all", profileController.ResetAll)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		// Remaining paths fall back to the SPA entry point.
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
