package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/handlers"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/telemetry"
)

func main() {
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := telemetry.Setup("storefront", os.Stdout)
		if err != nil {
			logger.Fatalf("tracing: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Printf("tracing shutdown: %v", err)
			}
		}()
	}

	var store storage.Backend
	switch cfg.StorageBackend {
	case "redis":
		rs, err := storage.DialRedis(ctx, cfg.RedisURL, cfg.StorageTTL)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		store = rs
	default:
		store = storage.NewMemoryBackend()
	}
	defer store.Close()

	renderer, err := handlers.NewRenderer()
	if err != nil {
		logger.Fatalf("templates: %v", err)
	}

	// One backend, one shared client
	backendHTTP := telemetry.NewHTTPClient(cfg.UpstreamTimeout)
	backend := clients.NewClient("backend", cfg.BackendURL, backendHTTP, cfg.PublicPaths)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:        logger,
		Cfg:           cfg,
		Storage:       store,
		Renderer:      renderer,
		Auth:          clients.NewAuthClient(backend),
		Products:      clients.NewProductClient(backend),
		Cart:          clients.NewCartClient(backend),
		Orders:        clients.NewOrderClient(backend),
		Admin:         clients.NewAdminClient(backend),
		AdminProducts: clients.NewAdminProductClient(backend),
		HealthProbes: []clients.HealthProbe{
			{Name: "backend", Client: backend, Path: "/api/v1/products"},
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on :%s (backend %s, storage %s)", cfg.Port, cfg.BackendURL, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Printf("shutdown complete")
}
