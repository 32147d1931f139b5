package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"courier_market/internal/config"
	"courier_market/internal/handler"
	"courier_market/internal/middleware"
	"courier_market/internal/repository"
	"courier_market/internal/service"
	"courier_market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	sessionSecret := os.Getenv("SESSION_SECRET_KEY")
	if sessionSecret == "" {
		log.Fatalf("SESSION_SECRET_KEY not set in environment")
	}
	sessionExpHoursStr := os.Getenv("SESSION_EXPIRATION_HOURS")
	sessionExpHours, err := strconv.ParseInt(sessionExpHoursStr, 10, 64)
	if err != nil {
		log.Printf("Invalid SESSION_EXPIRATION_HOURS, defaulting to 24: %v", err)
		sessionExpHours = 24
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(sessionSecret, sessionExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	requestRepo := repository.NewRequestRepository(dbPool)
	messageRepo := repository.NewMessageRepository(dbPool)
	offerRepo := repository.NewOfferRepository(dbPool)
	conversationRepo := repository.NewConversationRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	listingService := service.NewListingService(requestRepo, userRepo)
	conversationService := service.NewConversationService(conversationRepo, messageRepo, requestRepo, userRepo)
	offerService := service.NewOfferService(offerRepo, requestRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	listingHandler := handler.NewListingHandler(listingService, authService)
	messageHandler := handler.NewMessageHandler(conversationService, offerService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Responses must never be cached
	router.Use(middleware.NoCacheMiddleware())

	// --- Initialize Middlewares ---
	sessionMW := middleware.SessionAuthMiddleware(jwtUtil)
	sessionJSONMW := middleware.SessionAuthJSONMiddleware(jwtUtil)

	// --- Register Routes ---
	root := router.Group("/")
	authHandler.RegisterAuthRoutes(root)
	listingHandler.RegisterListingRoutes(root, sessionMW)
	messageHandler.RegisterMessageRoutes(root, sessionMW, sessionJSONMW)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		// Check DB connection
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
