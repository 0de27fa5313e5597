package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pisquared/dashboard_service/internal/api/handlers"
	"github.com/pisquared/dashboard_service/internal/api/middleware"
	"github.com/pisquared/dashboard_service/internal/infrastructure/di"
)

// SetupRoutes configures all application routes
func SetupRoutes(container *di.Container) *gin.Engine {
	if container.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	middleware.RegisterValidators()

	// Global middleware, order matters
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(container.Logger))
	router.Use(middleware.Recovery(container.Logger))
	router.Use(middleware.CORS(container.Config.Server.AllowedOrigins))
	router.Use(middleware.RateLimit(container.Config.Server.RateLimitPerMin))
	router.Use(middleware.SecurityHeaders())

	healthHandler := handlers.NewHealthHandler(container.Reference, container.Sessions, container.MarketData, container.Logger)
	versionHandler := handlers.NewVersionHandler()
	referenceHandler := handlers.NewReferenceHandler(container.Reference, container.Logger)
	stockHandler := handlers.NewStockHandler(container.Lookup, container.Renderer, container.Sessions, container.Wishlist, container.Logger)
	wishlistHandler := handlers.NewWishlistHandler(container.Sessions, container.Wishlist, container.Logger)
	portfolioHandler := handlers.NewPortfolioHandler(container.Sessions, container.Builder, container.Portfolio, container.Renderer, container.Logger)

	// Health and operational endpoints (no session required)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/version", versionHandler.Version)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation (development only)
	if container.Config.Environment != "production" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// API v1 routes, all session-scoped
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(container.Sessions))
	{
		ref := v1.Group("/reference")
		{
			ref.GET("/indices", referenceHandler.Indices)
			ref.GET("/companies", referenceHandler.Companies)
		}

		stocks := v1.Group("/stocks")
		{
			stocks.GET("/:symbol", stockHandler.Get)
			stocks.GET("/:symbol/chart", stockHandler.Chart)
		}

		wishlist := v1.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.List)
			wishlist.POST("", wishlistHandler.Add)
			wishlist.DELETE("/:ticker", wishlistHandler.Remove)
		}

		portfolio := v1.Group("/portfolio")
		{
			portfolio.GET("", portfolioHandler.Get)
			portfolio.GET("/draft", portfolioHandler.GetDraft)
			portfolio.POST("/draft/rows", portfolioHandler.AppendRow)
			portfolio.PUT("/draft/rows/:position", portfolioHandler.UpdateRow)
			portfolio.DELETE("/draft/rows/:position", portfolioHandler.RemoveRow)
			portfolio.POST("/draft/wishlist", portfolioHandler.AddFromWishlist)
			portfolio.POST("/validate", portfolioHandler.Validate)
			portfolio.GET("/chart/performance", portfolioHandler.PerformanceChart)
			portfolio.GET("/chart/allocation", portfolioHandler.AllocationChart)
		}
	}

	return router
}
