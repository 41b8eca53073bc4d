package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/nokras/hotel-booking/internal/adapter/handler"
	memoryrepo "github.com/nokras/hotel-booking/internal/adapter/repository/memory"
	postgresrepo "github.com/nokras/hotel-booking/internal/adapter/repository/postgres"
	"github.com/nokras/hotel-booking/internal/core/ports"
	"github.com/nokras/hotel-booking/internal/core/services"
	"github.com/nokras/hotel-booking/internal/platform/database"
	"github.com/nokras/hotel-booking/internal/platform/seed"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func buildRepositories(ctx context.Context) (ports.ListingRepository, ports.BookingRepository, func(), error) {
	driver := envOr("STORAGE_DRIVER", "memory")

	if driver == "memory" {
		log.Println("Using in-memory storage")
		return memoryrepo.NewListingRepository(seed.Listings()), memoryrepo.NewBookingRepository(), func() {}, nil
	}

	dbConfig := database.Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		User:     envOr("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   envOr("DB_NAME", "hotel_booking"),
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := database.EnsureSchema(ctx, db, seed.Listings()); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	return postgresrepo.NewListingRepository(db), postgresrepo.NewBookingRepository(db), func() { db.Close() }, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using OS environment variables")
	}

	ctx := context.Background()

	listingRepo, bookingRepo, closeStorage, err := buildRepositories(ctx)
	if err != nil {
		log.Fatalf("Failed to set up storage: %v", err)
	}
	defer closeStorage()

	var cache *redis.Client

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: addr, DB: 0})

		if err := cache.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}

		log.Println("Redis connected successfully!")
	}

	var holdTTL time.Duration

	if raw := os.Getenv("BOOKING_HOLD_TTL"); raw != "" {
		holdTTL, err = time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid BOOKING_HOLD_TTL: %v", err)
		}
	}

	bookingService := services.NewBookingService(listingRepo, bookingRepo, cache, nil, holdTTL)
	bookingHandler := handler.NewBookingHandler(bookingService)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()

	if holdTTL > 0 {
		go bookingService.RunHoldExpiry(workerCtx, time.Minute)
	}

	mux := http.NewServeMux()
	bookingHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + envOr("PORT", "8080"),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
