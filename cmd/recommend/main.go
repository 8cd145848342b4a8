package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/cosmassist/platform/internal/config"
	"github.com/cosmassist/platform/internal/events"
	"github.com/cosmassist/platform/internal/middleware"
	"github.com/cosmassist/platform/internal/recommend/engine"
	"github.com/cosmassist/platform/internal/recommend/handler"
	"github.com/cosmassist/platform/internal/recommend/llm"
	"github.com/cosmassist/platform/internal/recommend/productclient"
	redisclient "github.com/cosmassist/platform/internal/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load("8083")

	// Redis connection
	redis, err := redisclient.NewClient(cfg.RedisAddr, "", cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	catalog := productclient.NewClient(cfg.ProductAPIURL, redis.Client)
	llmClient := llm.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL)

	recommendEngine := engine.NewEngine(catalog, llmClient)
	recommendHandler := handler.NewRecommendHandler(recommendEngine, catalog)

	// Drop the cached catalog whenever the product service announces a change.
	subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
		Group:    "recommend-service",
		Consumer: consumerName(),
		Stream:   events.ProductEventsStream,
		Handler:  catalog.InvalidationHandler(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := subscriber.Start(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Product events subscriber stopped: %v", err)
		}
	}()

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "recommend"})
	})

	recommendHandler.RegisterRoutes(router)

	log.Printf("Recommendation service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func consumerName() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "recommend-1"
	}
	return "recommend-" + hostname
}
