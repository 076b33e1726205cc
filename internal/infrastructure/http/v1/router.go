// Package v1 wires the scan surface HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/catalog/product"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/scan"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/http/v1/handlers"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/http/v1/middleware"
	"github.com/prinzana/sellyticsOffline-sub002/pkg/logger"
)

// RouterConfig holds dependencies for the HTTP surface.
type RouterConfig struct {
	Logger   *logger.Logger
	Sessions *scan.Manager
	Products *product.Service
	StoreID  id.ID
	Dev      bool
}

// NewRouter builds the gin engine with the standard middleware chain.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Trace(),
		middleware.Operator(),
		middleware.Logger(cfg.Logger),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	health := handlers.NewHealthHandler()
	router.GET("/health", health.Check)

	scanH := handlers.NewScanHandler(cfg.Sessions)
	draftH := handlers.NewDraftHandler(cfg.Sessions)
	productH := handlers.NewProductHandler(cfg.Products, cfg.StoreID)

	api := router.Group("/api/v1")
	{
		api.POST("/scan", scanH.Scan)
		api.PUT("/scan/target", scanH.OpenTarget)
		api.POST("/scan/close", scanH.CloseSurface)

		api.GET("/draft", draftH.Get)
		api.POST("/draft/submit", draftH.Submit)
		api.POST("/draft/reset", draftH.Reset)
		api.POST("/draft/lines", draftH.AddLine)
		api.PATCH("/draft/lines/:line/quantity", draftH.SetQuantity)
		api.PATCH("/draft/lines/:line/price", draftH.SetPrice)

		api.GET("/products", productH.Lookup)
		api.GET("/products/:id", productH.Get)
	}

	return router
}
