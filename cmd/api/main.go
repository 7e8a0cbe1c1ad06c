package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/config"
	"github.com/devconnect/connect-api/internal/gateway"
	"github.com/devconnect/connect-api/internal/metrics"
	"github.com/devconnect/connect-api/internal/store"

	_ "github.com/devconnect/connect-api/docs" // swagger docs
)

// @title DevConnect API
// @version 1.0
// @description REST backend for the DevConnect developer network: accounts,
// @description profiles, connection requests, todos and realtime notifications.

// @contact.name API Support
// @contact.email support@devconnect.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token cookie set by /auth/login.

func main() {
	// Initialize OpenTelemetry
	if err := initTracer(); err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}

	// Load configuration; fails fast when JWT_SECRET is missing
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to PostgreSQL with retry logic
	log.Println("Connecting to PostgreSQL database...")
	var pool *pgxpool.Pool

	for i := 0; i < 10; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				break
			}
		}
		log.Printf("Waiting for database... (attempt %d/10): %v", i+1, err)
		time.Sleep(3 * time.Second)
	}

	if err != nil {
		log.Fatalf("Failed to connect to database after retries: %v", err)
	}

	defer pool.Close()
	log.Println("Connected to PostgreSQL database")

	// Apply schema migrations
	if err := store.Migrate(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize stores
	userStore := store.NewPostgresUserStore(pool)
	connectionStore := store.NewPostgresConnectionStore(pool)
	todoStore := store.NewPostgresTodoStore(pool)

	// Initialize JWT manager
	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize JWT manager: %v", err)
	}

	// Initialize auth metrics
	authMetrics, err := metrics.NewAuthMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize auth metrics: %v", err)
	}

	// Initialize gateway layer
	notifier := gateway.NewNotifier()
	handler := gateway.NewHandler(userStore, connectionStore, todoStore, jwtManager, authMetrics, notifier)

	// Setup Gin router
	router := gin.Default()

	// Add structured JSON logging middleware
	router.Use(structuredLoggingMiddleware())

	// Health checks at the root
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.GET("/ready", func(c *gin.Context) {
		// Check database connectivity for readiness
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  "database connection failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// API routes
	api := router.Group("/api")

	// Public routes (no authentication required)
	api.POST("/auth/signup", handler.Signup)
	api.POST("/auth/login", handler.Login)
	api.POST("/auth/logout", handler.Logout)

	// Swagger documentation (public)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes (require a valid session token cookie)
	protected := api.Group("")
	protected.Use(auth.RequireAuth(jwtManager, userStore, authMetrics))

	// Profile routes
	protected.GET("/profile/view", handler.ViewProfile)
	protected.PATCH("/profile/edit", handler.EditProfile)
	protected.PATCH("/profile/password", handler.ChangePassword)

	// User routes
	protected.GET("/users", handler.ListUsers)
	protected.GET("/users/:id", handler.GetUser)
	protected.DELETE("/users/:id", handler.DeleteUser)

	// Connection request routes
	protected.POST("/requests/send/:status/:toUserId", handler.SendConnectionRequest)

	// Todo routes
	protected.POST("/todos", handler.CreateTodo)
	protected.GET("/todos", handler.ListTodos)
	protected.GET("/todos/:id", handler.GetTodo)
	protected.PATCH("/todos/:id", handler.UpdateTodo)
	protected.DELETE("/todos/:id", handler.DeleteTodo)

	// WebSocket routes (authenticated)
	protected.GET("/ws/notifications", notifier.Stream)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting DevConnect API server on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// initTracer initializes OpenTelemetry tracing
func initTracer() error {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)

	return nil
}

// structuredLoggingMiddleware provides structured JSON logging for all requests
func structuredLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		latency := time.Since(start)

		userID, _ := c.Get(auth.UserIDKey)

		logEntry := map[string]interface{}{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}

		if userID != nil {
			logEntry["user_id"] = userID
		}

		if len(c.Errors) > 0 {
			logEntry["errors"] = c.Errors.String()
		}

		logJSON, _ := json.Marshal(logEntry)
		log.Println(string(logJSON))
	}
}
