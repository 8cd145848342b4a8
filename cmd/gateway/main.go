package main

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/cosmassist/platform/internal/config"
	"github.com/cosmassist/platform/internal/middleware"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load("8080")
	auth := middleware.AuthMiddleware([]byte(cfg.JWTSecret))

	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "api-gateway"})
	})

	// Payment routes
	router.GET("/api/payment/accounts", proxyTo(cfg.PaymentServiceURL))
	router.POST("/api/payment/transaction", proxyTo(cfg.PaymentServiceURL))
	router.GET("/api/payment/transaction/:id", proxyTo(cfg.PaymentServiceURL))

	// Product routes. Reads are public, mutations need a verified token.
	router.GET("/api/products", proxyTo(cfg.ProductServiceURL))
	router.GET("/api/products/:id", proxyTo(cfg.ProductServiceURL))
	router.POST("/api/products", auth, proxyTo(cfg.ProductServiceURL))
	router.PUT("/api/products/:id", auth, proxyTo(cfg.ProductServiceURL))
	router.DELETE("/api/products/:id", auth, proxyTo(cfg.ProductServiceURL))
	router.POST("/api/products/import", auth, proxyTo(cfg.ProductServiceURL))

	// Recommendation routes
	router.POST("/api/recommendations", proxyTo(cfg.RecommendServiceURL))
	router.GET("/api/recommendations/quick", proxyTo(cfg.RecommendServiceURL))

	log.Printf("API Gateway starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func proxyTo(serviceURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Build target URL
		targetURL := serviceURL + c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			targetURL += "?" + c.Request.URL.RawQuery
		}

		// Read request body
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, bytes.NewBuffer(bodyBytes))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create request"})
			return
		}

		// Copy headers
		for key, values := range c.Request.Header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		// Forward user context from JWT middleware if authenticated
		if userID, ok := middleware.GetUserID(c); ok {
			req.Header.Set("X-User-ID", userID)
		}

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			log.Printf("Error proxying request: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Service unavailable"})
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read response"})
			return
		}

		// Copy response headers
		for key, values := range resp.Header {
			for _, value := range values {
				c.Header(key, value)
			}
		}

		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}
}
