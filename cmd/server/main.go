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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/attendify/attendify/internal/capture"
	"github.com/attendify/attendify/internal/common/clock"
	"github.com/attendify/attendify/internal/common/uuid"
	"github.com/attendify/attendify/internal/config"
	"github.com/attendify/attendify/internal/handlers/httpapi"
	preferencesRepo "github.com/attendify/attendify/internal/repositories/preferences"
	recordRepo "github.com/attendify/attendify/internal/repositories/record"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	sessionRepo "github.com/attendify/attendify/internal/repositories/session"
	"github.com/attendify/attendify/internal/services/attendance"
	"github.com/attendify/attendify/internal/services/reporting"
	rosterService "github.com/attendify/attendify/internal/services/roster"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	records, err := recordRepo.NewRedis(&recordRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create record repository: %v", err)
	}

	roster, err := rosterRepo.NewRedis(&rosterRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create roster repository: %v", err)
	}

	prefs, err := preferencesRepo.NewRedis(&preferencesRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create preferences repository: %v", err)
	}

	// Initialize services
	attendanceSvc, err := attendance.New(&attendance.Config{
		GracePeriod:   cfg.GracePeriod,
		SessionRepo:   sessions,
		RecordRepo:    records,
		RosterRepo:    roster,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create attendance service: %v", err)
	}

	reportingSvc, err := reporting.New(&reporting.Config{
		RecordRepo: records,
		RosterRepo: roster,
	})
	if err != nil {
		log.Fatalf("Failed to create reporting service: %v", err)
	}

	rosterSvc, err := rosterService.New(&rosterService.Config{
		RosterRepo:    roster,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create roster service: %v", err)
	}

	// Face check-in stays disabled unless a recognition service is
	// configured
	var matcher capture.Matcher
	if !cfg.FaceServiceSkip && cfg.FaceServiceURL != "" {
		matcher, err = capture.NewFaceServiceMatcher(&capture.FaceServiceConfig{
			BaseURL:   cfg.FaceServiceURL,
			Threshold: cfg.FaceMatchThreshold,
		})
		if err != nil {
			log.Fatalf("Failed to create face service client: %v", err)
		}
	}

	// Initialize the HTTP handler
	handler, err := httpapi.NewHandler(&httpapi.Config{
		AttendanceService: attendanceSvc,
		ReportingService:  reportingSvc,
		RosterService:     rosterSvc,
		PreferencesRepo:   prefs,
		FaceMatcher:       matcher,
		JWTSecret:         cfg.JWTSecret,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTP handler: %v", err)
	}

	engine := gin.Default()
	handler.Register(engine)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	go func() {
		log.Printf("Listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server has been shut down")
}
