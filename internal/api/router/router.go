package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Victor-Smirnoff/product-release-control/config"
	"github.com/Victor-Smirnoff/product-release-control/internal/api/handler"
	"github.com/Victor-Smirnoff/product-release-control/internal/api/middleware"
)

// Pinger 健康检查依赖
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, db Pinger, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	{
		tasks := v1.Group("/shift-tasks")
		{
			tasks.GET("", h.ShiftTask.ListShiftTasks)
			tasks.POST("", h.ShiftTask.UpsertShiftTask)
			tasks.GET("/by-key", h.ShiftTask.GetShiftTaskByKey)
			tasks.GET("/filter", h.ShiftTask.FilterShiftTasks)
			tasks.GET("/export", h.Export.ExportShiftTasks)
			tasks.GET("/calendar.ics", h.Export.ShiftCalendar)
			tasks.GET("/:id", h.ShiftTask.GetShiftTask)
			tasks.PATCH("/:id", h.ShiftTask.UpdateShiftTask)

			// 产品唯一码
			tasks.GET("/:id/products", h.Product.ListProducts)
			tasks.POST("/:id/products", h.Product.AddProducts)
			tasks.POST("/:id/aggregate", h.Product.Aggregate)
		}
	}

	return r
}
