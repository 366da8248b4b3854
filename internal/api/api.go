// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/api/handlers"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/api/middleware"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/service"
)

type Services struct {
	Ingest    *service.IngestService
	Analytics *service.AnalyticsService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	if services != nil {
		if services.Ingest != nil {
			ordersHandler := handlers.NewOrdersHandler(services.Ingest)
			orders := v1.Group("/orders")
			{
				orders.POST("/items/upload", ordersHandler.UploadOrderItems)
				orders.POST("/upload", ordersHandler.UploadSoldOrders)
				orders.GET("/items", ordersHandler.ListOrderItems)
				orders.GET("/summaries", ordersHandler.ListSoldOrders)
				orders.DELETE("", ordersHandler.ClearOrders)
			}
		}

		if services.Analytics != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			analytics := v1.Group("/analytics")
			{
				analytics.POST("/forecast", analyticsHandler.Forecast)
				analytics.GET("/regions", analyticsHandler.RegionalStats)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
