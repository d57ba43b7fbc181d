package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/seydina/distriops/docs"
	"github.com/seydina/distriops/internal/analytics"
	analyticsdomain "github.com/seydina/distriops/internal/analytics/domain"
	"github.com/seydina/distriops/internal/catalog"
	catalogdomain "github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/order"
	orderdomain "github.com/seydina/distriops/internal/order/domain"
	"github.com/seydina/distriops/internal/stock"
	stockdomain "github.com/seydina/distriops/internal/stock/domain"
	stockcommand "github.com/seydina/distriops/internal/stock/usecase/command"
	"github.com/seydina/distriops/internal/vendors"
	vendorhttp "github.com/seydina/distriops/internal/vendors/delivery/http"
	vendordomain "github.com/seydina/distriops/internal/vendors/domain"
	vendorcommand "github.com/seydina/distriops/internal/vendors/usecase/command"
	"github.com/seydina/distriops/kafka"
	"github.com/seydina/distriops/pkg/database"
	"github.com/seydina/distriops/pkg/logger"
	"github.com/seydina/distriops/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "distriops-server")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting distriops server")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "distriops"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	err = db.AutoMigrate(
		&catalogdomain.Product{},
		&catalogdomain.ProductVariant{},
		&stockdomain.StockMovement{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&vendordomain.Vendor{},
		&vendordomain.VendorActivity{},
		&vendordomain.Sale{},
		&analyticsdomain.DailySalesReport{},
		&analyticsdomain.DailyStockReport{},
		&analyticsdomain.ProcessedEvent{},
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional: without brokers the server still
	// serves requests, it just emits no events.
	var (
		movementPublisher stockcommand.MovementPublisher
		salePublisher     vendorcommand.SalePublisher
	)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to connect to Kafka, continuing without events")
		} else {
			defer publisher.Close()
			movementPublisher = publisher
			salePublisher = publisher
		}
	}

	// Initialize handlers with Wire DI
	catalogHandler, err := catalog.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}
	stockHandler, err := stock.InitializeHTTPHandler(db, movementPublisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize stock handler")
	}
	orderHandler, err := order.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}
	vendorHandler, err := vendors.InitializeHTTPHandler(db, salePublisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize vendor handler")
	}
	analyticsHandler, err := analytics.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize analytics handler")
	}

	// Setup router
	router := mux.NewRouter()
	catalogHandler.RegisterRoutes(router)
	stockHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	vendorHandler.RegisterRoutes(router)
	analyticsHandler.RegisterRoutes(router)

	// Health check endpoint
	catalogHandler.RegisterHealthCheck(router, sqlDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	vendorhttp.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "distriops-http")

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
