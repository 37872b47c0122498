package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/config"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/api/handler"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/api/router"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/dto"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/repository"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/service"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/database"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/interval"
	applogger "github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/logger"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	loc, err := cfg.Sync.Location()
	if err != nil {
		logger.Fatal("invalid sync timezone", zap.Error(err))
	}

	// 3. Database
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	// 3.1 Migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to access underlying sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Redis (optional: rate limiting and the name cache degrade without it)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting and name cache disabled", zap.Error(err))
		rdb = nil
	}

	// 5. Dependency injection: repository → service → handler
	repo := repository.NewRepository(db)
	svc := service.NewServices(repo, rdb, &cfg.Sync, loc, logger)
	h := handler.NewHandler(svc)

	// 6. Router
	engine := router.Setup(cfg, h, rdb, logger)

	// 7. Scheduled jobs: weekly rollover and nightly re-sync
	var scheduler *cron.Cron
	if cfg.Sync.AutoRolloverEnabled {
		scheduler = cron.New(cron.WithLocation(loc))

		if _, err := scheduler.AddFunc(cfg.Sync.RolloverCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if _, err := svc.Rollover.PerformRollover(ctx, time.Now().In(loc)); err != nil {
				logger.Error("scheduled rollover failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("invalid rollover cron spec", zap.Error(err))
		}

		if _, err := scheduler.AddFunc(cfg.Sync.AutoSyncCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			req := &dto.SlotSyncRequest{
				StartDate: interval.FormatDate(time.Now().In(loc)),
				DaysAhead: cfg.Sync.DaysAhead,
			}
			if _, err := svc.Sync.Run(ctx, req); err != nil {
				logger.Error("scheduled sync failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("invalid auto-sync cron spec", zap.Error(err))
		}

		scheduler.Start()
		logger.Info("scheduled jobs started",
			zap.String("rollover_cron", cfg.Sync.RolloverCron),
			zap.String("auto_sync_cron", cfg.Sync.AutoSyncCron),
		)
	}

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
