// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/api"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/cache"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/config"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/service"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/storage"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/store"
	"github.com/mojavemfg/mfgdashboard-sub000/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Blob backend for the persisted order collections
	blob, closeBlob, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize store backend")
	}
	if closeBlob != nil {
		defer closeBlob()
	}

	items := store.NewRecordStore(blob, "order_items", func(r domain.OrderRecord) string {
		return r.TransactionID
	})
	summaries := store.NewRecordStore(blob, "sold_orders", func(r domain.SaleSummaryRecord) string {
		return r.OrderID
	})

	// Analytics cache (noop when redis is disabled or unreachable)
	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Analytics cache unavailable, continuing without caching")
		analyticsCache = cache.NewNoopAnalyticsCache()
	}

	// Optional object-storage archive for raw export files
	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		client, err := storage.NewMinioClient(ctx, cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Archive storage unavailable, continuing without archival")
		} else {
			archive = client
		}
	}

	// Initialize services
	services := &api.Services{
		Ingest:    service.NewIngestService(items, summaries, archive, analyticsCache),
		Analytics: service.NewAnalyticsService(summaries, analyticsCache),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func newBlobStore(ctx context.Context, cfg *config.Config) (store.BlobStore, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		pg, err := store.NewPostgresBlobStore(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	case "memory":
		return store.NewMemoryBlobStore(), nil, nil
	default:
		fs, err := store.NewFileBlobStore(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	}
}
