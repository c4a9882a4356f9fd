package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yardroster/backend/internal/config"
	"github.com/yardroster/backend/internal/http/handlers"
	"github.com/yardroster/backend/internal/http/middleware"

	_ "github.com/yardroster/backend/docs"
)

func Router(cfg config.Config, h *handlers.Handler, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/state", h.StateGet)
		api.GET("/warnings", h.Warnings)
		api.GET("/roster", h.RosterGet)
		api.GET("/roster/by-employee", h.RosterByEmployee)
		api.GET("/roster/export", h.RosterExport)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/state/clear", h.StateClear)
		admin.POST("/employees", h.EmployeeCreate)
		admin.PATCH("/employees/:id", h.EmployeePatch)
		admin.DELETE("/employees/:id", h.EmployeeDelete)
		admin.POST("/car-yards", h.CarYardCreate)
		admin.PATCH("/car-yards/:id", h.CarYardPatch)
		admin.DELETE("/car-yards/:id", h.CarYardDelete)
		admin.PATCH("/settings", h.SettingsPatch)
		admin.POST("/roster/generate", h.RosterGenerate)
		admin.POST("/roster/remove-worker", h.RosterRemoveWorker)
		admin.POST("/roster/add-worker", h.RosterAddWorker)
		admin.POST("/roster/move-shift", h.RosterMoveShift)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
