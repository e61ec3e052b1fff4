package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/admetrics-hub/admetrics-backend/config"
	"github.com/admetrics-hub/admetrics-backend/internal/attachments/storage"
	"github.com/admetrics-hub/admetrics-backend/internal/auth"
	"github.com/admetrics-hub/admetrics-backend/internal/bootstrap"
	"github.com/admetrics-hub/admetrics-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	userDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open user database connection: %v", err)
	}
	defer userDB.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis unavailable, dashboard caching disabled: %v", err)
		redisClient = nil
	}
	cancel()

	deps := bootstrap.RouterDeps{
		ServiceName: "admetrics-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		UserDB:      userDB,
		Redis:       redisClient,
	}

	if cfg.Firebase.CredentialsPath != "" {
		fbClient, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		deps.Firebase = fbClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, using dev auth middleware")
	}

	if cfg.Storage.Bucket != "" {
		blobs, err := storage.NewStore(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize blob storage: %v", err)
		}
		deps.Blobs = blobs
	} else {
		log.Println("STORAGE_BUCKET not set, document uploads disabled")
	}

	router, scheduler := bootstrap.BuildRouter(deps)
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
