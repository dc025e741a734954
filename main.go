package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/repository"
	"hotel-booking/routes"
	"hotel-booking/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	var store repository.Store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store = repository.NewMemoryStore()
		log.Println("[store] using in-memory store; data is lost on restart")
	default:
		db, err := config.ConnectDatabase()
		if err != nil {
			log.Fatalf("database connect failed: %v", err)
		}
		store = repository.NewGormStore(db)
		log.Println("[store] database connection established and migrations applied")
	}

	var denylist services.TokenDenylist
	if cfg.RedisURL != "" {
		client, err := config.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		denylist = services.NewRedisDenylist(client)
	} else {
		log.Println("[auth] REDIS_URL not set; logout only clears the cookie")
	}

	// Initialize services
	authService := services.NewAuthService(store, []byte(cfg.SessionSecret), cfg.SessionTTL, denylist)
	userService := services.NewUserService(store)
	catalogService := services.NewCatalogService(store)
	availabilityService := services.NewAvailabilityService(store)
	bookingService := services.NewBookingService(store)
	imageService := services.NewImageService(cfg.UploadDir)

	if err := userService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	// Build router
	router := routes.SetupRouter(routes.Controllers{
		Auth:    controllers.NewAuthController(authService, cfg.CookieSecure),
		User:    controllers.NewUserController(userService),
		Hotel:   controllers.NewHotelController(catalogService, availabilityService),
		Room:    controllers.NewRoomController(catalogService, availabilityService),
		Booking: controllers.NewBookingController(bookingService),
		Upload:  controllers.NewUploadController(imageService),
	}, authService, imageService.Dir())

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("[http] server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[http] shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
		return
	}

	log.Println("[http] server stopped gracefully")
}
