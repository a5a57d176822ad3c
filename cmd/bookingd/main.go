package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"barber-booking-backend/config"
	"barber-booking-backend/internal/api"
	"barber-booking-backend/internal/db"
	"barber-booking-backend/internal/notification"
	"barber-booking-backend/internal/reclaim"
	"barber-booking-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "booking-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("booking store initialized")

	// Web push is optional: without VAPID keys the dashboard feed still
	// works, only browser pushes are skipped.
	var webpushOptions *webpush.Options
	var workerPool *notification.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		workerPool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		workerPool.Start(ctx)
		logger.Printf("web push enabled with %d notification worker(s)", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; web push notifications disabled")
	}

	// The response cache is shared between the router and the reclamation
	// service: the sweep flushes it so pruned bookings never linger in
	// cached responses.
	cacheStore := api.NewResponseCache(cfg)

	// Daily reclamation of past-dated bookings, fired at local midnight.
	reclaimSvc := reclaim.NewService(cfg, appStore, cacheStore.Flush)
	go reclaimSvc.Run(ctx)

	router := api.NewRouter(cfg, appStore, webpushOptions, workerPool, cacheStore)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		logger.Printf("customer booking: http://localhost:%d  owner dashboard: http://localhost:%d/owner", cfg.Server.Port, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
