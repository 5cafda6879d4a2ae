package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"habit-tracker-service/internal/config"
	"habit-tracker-service/internal/db"
	"habit-tracker-service/internal/handler"
	"habit-tracker-service/internal/httpserver"
	"habit-tracker-service/internal/mq"
	"habit-tracker-service/internal/notify"
	"habit-tracker-service/internal/repository"
	"habit-tracker-service/internal/service/dashboard"
	"habit-tracker-service/internal/service/moneymarket"
	"habit-tracker-service/internal/service/reconcile"
	"habit-tracker-service/internal/service/streak"
	"habit-tracker-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting habit-tracker-service...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
		zap.Int("reconcile_hour", cfg.Reconcile.Hour),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer migrateCancel()
	if err := db.Migrate(migrateCtx, dbConn, log); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}
	if err := db.SeedDefaultHabits(migrateCtx, dbConn, log); err != nil {
		log.Fatal("Failed to seed default habits", zap.Error(err))
	}

	// Redis (dashboard cache; the service runs fine without it)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Info("Redis client initialized", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("Redis not configured, dashboard cache disabled")
	}

	// MQ publisher (notification transport; reconciliation must not
	// depend on the broker being up)
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Warn("Failed to init MQ publisher, notifications will be logged as failed", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	} else {
		log.Warn("MQ not configured, notifications disabled")
	}

	// Repositories
	habitRepo := repository.NewHabitRepository(dbConn, log)
	trackingRepo := repository.NewTrackingRepository(dbConn, log)
	progressRepo := repository.NewProgressRepository(dbConn, log)
	notificationLogRepo := repository.NewNotificationLogRepository(dbConn, log)
	settingsRepo := repository.NewSettingsRepository(dbConn, log)
	moneyMarketRepo := repository.NewMoneyMarketRepository(dbConn, log)

	// Services
	cache := dashboard.NewCache(rdb, time.Minute, log)
	tracker := streak.NewTracker(habitRepo, trackingRepo, cache, log)
	dashboardService := dashboard.NewService(habitRepo, trackingRepo, cache, log)
	moneyMarketService := moneymarket.NewService(moneyMarketRepo, log)

	var notifierPublisher notify.Publisher
	if publisher != nil {
		notifierPublisher = publisher
	}
	notifier := notify.NewNotifier(settingsRepo, notificationLogRepo, notifierPublisher, 5*time.Second, log)

	job := reconcile.NewJob(reconcile.NewPgStore(dbConn, log), notifier, log)

	// Daily reconciliation trigger
	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()

	go func() {
		// Catch-up run at startup: re-running a reconciled day is safe
		// and covers ticks missed while the process was down.
		if err := job.RunDailyReconciliation(jobCtx); err != nil {
			log.Error("Startup reconciliation failed", zap.Error(err))
		}

		for {
			delay := untilNextTrigger(time.Now(), cfg.Reconcile.Hour)
			log.Info("Next reconciliation scheduled", zap.Duration("delay", delay))

			select {
			case <-jobCtx.Done():
				log.Info("Reconciliation scheduler stopped")
				return
			case <-time.After(delay):
				if err := job.RunDailyReconciliation(jobCtx); err != nil {
					log.Error("Daily reconciliation failed, will retry next tick", zap.Error(err))
				}
			}
		}
	}()

	// Handlers
	habitHandler := handler.NewHabitHandler(habitRepo, cache, log)
	trackingHandler := handler.NewTrackingHandler(tracker, trackingRepo, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, progressRepo, log)
	settingsHandler := handler.NewSettingsHandler(settingsRepo, log)
	moneyMarketHandler := handler.NewMoneyMarketHandler(moneyMarketService, log)

	router := httpserver.NewRouter(
		habitHandler,
		trackingHandler,
		dashboardHandler,
		settingsHandler,
		moneyMarketHandler,
		dbConn,
		publisher,
		log,
	)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("habit-tracker-service is fully initialized and running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down habit-tracker-service gracefully...")
	jobCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	if rdb != nil {
		_ = rdb.Close()
	}

	log.Info("habit-tracker-service shutdown complete")
}

// untilNextTrigger returns the wait until the next daily reconciliation
// time (hour o'clock local, normally midnight).
func untilNextTrigger(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
