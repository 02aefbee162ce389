package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catalogkit/catalog-admin-service/internal/api/handlers"
	"github.com/catalogkit/catalog-admin-service/internal/api/middleware"
	"github.com/catalogkit/catalog-admin-service/internal/assets"
	"github.com/catalogkit/catalog-admin-service/internal/cache"
	"github.com/catalogkit/catalog-admin-service/internal/config"
	"github.com/catalogkit/catalog-admin-service/internal/health"
	"github.com/catalogkit/catalog-admin-service/internal/metrics"
	repository "github.com/catalogkit/catalog-admin-service/internal/repositories"
	service "github.com/catalogkit/catalog-admin-service/internal/services"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	if cfg.Tracing.Enabled {
		shutdown, err := initTracer(cfg)
		if err != nil {
			slog.Error("Error initializing tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdown(ctx); err != nil {
				slog.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	defer func() {
		if err := productCache.Close(); err != nil {
			slog.Error("Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Asset store selection: one mode per process, never mixed.
	var store assets.Store

	switch cfg.Assets.Mode {
	case config.AssetModeDatabase:
		store = assets.NewBlobStore(repos.DB)
	default:
		store = assets.NewFileStore(cfg.Assets.UploadDir)
	}

	store = assets.NewInstrumentedStore(store)

	categoryService := service.NewCategoryService(repos.Category, store)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productService := service.NewProductService(repos.Product, store, productCache)
	productHandler := handlers.NewProductHandler(productService)
	imageHandler := handlers.NewImageHandler(store)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("asset_mode", cfg.Assets.Mode))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/categories", categoryHandler.CreateCategory())
	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", categoryHandler.UpdateCategory())
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", categoryHandler.DeleteCategory())
	routerMux.HandleFunc("POST /api/v1/products", productHandler.CreateProduct())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", productHandler.UpdateProduct())
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", productHandler.DeleteProduct())
	routerMux.HandleFunc("GET /api/v1/images/{namespace}/{key}", imageHandler.GetImage())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

}

func initTracer(cfg *config.Config) (func(context.Context) error, error) {

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpointURL(cfg.Tracing.ExporterEndpoint))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("catalog-admin-service"),
		)),
	)

	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
