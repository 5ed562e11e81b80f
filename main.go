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

	"github.com/cashflowx/cashflowx_backend/config"
	"github.com/cashflowx/cashflowx_backend/middleware"
	"github.com/cashflowx/cashflowx_backend/repositories"
	"github.com/cashflowx/cashflowx_backend/routes"
	"github.com/cashflowx/cashflowx_backend/security"
	"github.com/cashflowx/cashflowx_backend/services"
	"github.com/cashflowx/cashflowx_backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to storage
	var store *repositories.Store
	switch cfg.StorageDriver {
	case "memory":
		log.Println("Using in-memory storage; data is lost on restart")
		store = repositories.NewMemoryStore()
	default:
		client, db, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			log.Fatalf("MongoDB connection error: %v", err)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("MongoDB disconnect error: %v", err)
			}
		}()
		store = repositories.NewMongoStore(db)
	}

	// Connect to Redis (optional)
	redisClient := config.ConnectRedis(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Ensure uploads directory exists
	images := utils.NewImageStore(cfg.UploadDir)
	if err := images.InitializeStorage(); err != nil {
		log.Fatalf("Upload storage error: %v", err)
	}

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Close()

	e := routes.NewServer(routes.Options{
		Store:          store,
		Tokens:         security.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		Mailer:         services.NewMailer(cfg.SMTP),
		Throttle:       services.NewResetThrottle(redisClient),
		Images:         images,
		BaseURL:        cfg.BaseURL,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    rateLimiter,
	})

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	log.Printf("Server is running on port %s", cfg.Port)

	<-ctx.Done()
	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
