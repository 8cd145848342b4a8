package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/cosmassist/platform/internal/middleware"
	"github.com/cosmassist/platform/internal/recommend"
	"github.com/gin-gonic/gin"
)

// Recommender runs recommendation passes for RecommendHandler.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.RecommendationRequest) (*recommend.RecommendationResponse, error)
}

// HealthChecker reports product API connectivity.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type RecommendHandler struct {
	engine Recommender
	health HealthChecker
}

func NewRecommendHandler(engine Recommender, health HealthChecker) *RecommendHandler {
	return &RecommendHandler{engine: engine, health: health}
}

func (h *RecommendHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.POST("/recommendations", h.Recommend)
		api.GET("/recommendations/quick", h.QuickRecommend)
		api.GET("/health", h.Health)
	}
}

func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req recommend.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	response, err := h.engine.Recommend(c.Request.Context(), req)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadGateway, "Failed to generate recommendations")
		return
	}
	c.JSON(http.StatusOK, response)
}

// QuickRecommend is the query-param shortcut: skinType, comma-separated
// concerns and a limit, always ranked with the hybrid strategy.
func (h *RecommendHandler) QuickRecommend(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			middleware.RespondWithError(c, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = parsed
	}

	var concerns []string
	for _, concern := range strings.Split(c.Query("concerns"), ",") {
		if concern = strings.TrimSpace(concern); concern != "" {
			concerns = append(concerns, concern)
		}
	}

	response, err := h.engine.Recommend(c.Request.Context(), recommend.RecommendationRequest{
		SkinProfile: recommend.SkinProfile{
			SkinType: c.Query("skinType"),
			Concerns: concerns,
		},
		Limit: limit,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadGateway, "Failed to generate recommendations")
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *RecommendHandler) Health(c *gin.Context) {
	connected := h.health.Healthy(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"ok":                  true,
		"service":             "recommendation",
		"productApiConnected": connected,
	})
}
