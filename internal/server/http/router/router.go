package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Facade is everything the HTTP surface needs from the application.
type Facade interface {
	handlers.StoreFacade
	handlers.HealthChecker
}

// Setup configures gin router with handlers and middleware.
func Setup(facade Facade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	productHandler := handlers.NewProductHandler(facade)

	engine.GET("/health", handlers.Health(facade))

	api := engine.Group("/api/v1")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/products", productHandler.List)

	user := api.Group("")
	user.Use(middleware.AuthRequired(facade))
	user.POST("/order", orderHandler.Create)
	user.GET("/order/:id", orderHandler.Get)
	user.GET("/myorders", orderHandler.Mine)

	admin := user.Group("")
	admin.Use(middleware.AdminRequired())
	admin.GET("/orders", orderHandler.All)
	admin.PUT("/order/:id", orderHandler.UpdateStatus)
	admin.DELETE("/order/:id", orderHandler.Delete)

	return engine
}
