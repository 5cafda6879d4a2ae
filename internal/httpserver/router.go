package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"habit-tracker-service/internal/handler"
	"habit-tracker-service/internal/mq"
	"habit-tracker-service/pkg/metrics"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	habitHandler *handler.HabitHandler,
	trackingHandler *handler.TrackingHandler,
	dashboardHandler *handler.DashboardHandler,
	settingsHandler *handler.SettingsHandler,
	moneyMarketHandler *handler.MoneyMarketHandler,
	db *pgxpool.Pool,
	publisher *mq.Publisher,
	logger *zap.Logger,
) *Router {
	r := gin.Default()
	r.Use(metricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if publisher != nil && !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/habits", habitHandler.ListHabits)
		api.POST("/habits", habitHandler.CreateHabit)
		api.PUT("/habits/:id", habitHandler.UpdateHabit)
		api.DELETE("/habits/:id", habitHandler.DeleteHabit)

		api.POST("/tracking", trackingHandler.TrackHabit)
		api.GET("/tracking/:habit_id", trackingHandler.GetHabitTracking)

		api.GET("/dashboard", dashboardHandler.GetDashboard)
		api.GET("/progress", dashboardHandler.GetDailyProgress)

		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.UpdateSetting)

		api.GET("/money-market/concepts", moneyMarketHandler.GetConcepts)
		api.GET("/money-market/today", moneyMarketHandler.GetTodayConcept)
		api.POST("/money-market/complete", moneyMarketHandler.CompleteConcept)
		api.GET("/money-market/progress", moneyMarketHandler.GetProgress)
	}

	logger.Info("HTTP routes registered")
	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
