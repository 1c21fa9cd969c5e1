package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/httpserver"
	"taskboard/internal/repository"
	"taskboard/internal/service/auth"
	"taskboard/internal/service/task"
	"taskboard/pkg/db"
	"taskboard/pkg/logger"
	"taskboard/pkg/mq"
	"taskboard/pkg/redis"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Starting taskboard...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("port", cfg.Server.Port),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	if err := database.RunMigrations(db.URL(cfg.DB)); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// RabbitMQ publisher (optional)
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatal("Failed to init MQ publisher", zap.Error(err))
		}
		defer publisher.Close()
		log.Info("MQ publisher initialized", zap.String("exchange", mq.ExchangeName))
	}

	// Redis-backed auth rate limiting (optional)
	var limiter httpserver.CounterStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(cfg.Redis)
		defer rdb.Close()
		limiter = httpserver.NewRedisCounter(rdb)
		log.Info("Redis rate limiter initialized", zap.String("addr", cfg.Redis.Addr))
	}

	// Repositories
	userRepo := repository.NewUserRepository(dbConn)
	taskRepo := repository.NewTaskRepository(dbConn, log)

	// Services
	authService := auth.NewService(userRepo, cfg.JWT.Secret)

	var events task.EventPublisher
	if publisher != nil {
		events = publisher
	}
	taskService := task.NewService(taskRepo, events, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	taskHandler := handler.NewTaskHandler(taskService, log)

	// Router
	router := httpserver.NewRouter(authHandler, taskHandler, cfg.JWT.Secret, limiter, log, dbConn, publisher)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down taskboard gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("taskboard shutdown complete")
}
