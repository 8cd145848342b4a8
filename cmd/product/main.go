package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/cosmassist/platform/internal/config"
	"github.com/cosmassist/platform/internal/events"
	"github.com/cosmassist/platform/internal/middleware"
	"github.com/cosmassist/platform/internal/product/handler"
	"github.com/cosmassist/platform/internal/product/repository"
	"github.com/cosmassist/platform/internal/product/service"
	redisclient "github.com/cosmassist/platform/internal/redis"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load("8082")

	// Database connection
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Redis connection
	redis, err := redisclient.NewClient(cfg.RedisAddr, "", cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	publisher := events.NewPublisher(redis.Client)

	productRepo := repository.NewProductRepository(db, redis.Client)
	productSvc := service.NewProductService(productRepo, publisher)
	importer := service.NewImporter(productSvc, cfg.ImportSourceURL)

	productHandler := handler.NewProductHandler(productSvc, importer)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "product"})
	})

	productHandler.RegisterRoutes(router)

	log.Printf("Product service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
