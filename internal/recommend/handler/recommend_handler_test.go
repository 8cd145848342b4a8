package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cosmassist/platform/internal/product"
	"github.com/cosmassist/platform/internal/recommend"
	"github.com/gin-gonic/gin"
)

type mockEngine struct {
	recommendFn func(recommend.RecommendationRequest) (*recommend.RecommendationResponse, error)
	lastRequest recommend.RecommendationRequest
}

func (m *mockEngine) Recommend(ctx context.Context, req recommend.RecommendationRequest) (*recommend.RecommendationResponse, error) {
	m.lastRequest = req
	if m.recommendFn != nil {
		return m.recommendFn(req)
	}
	return nil, fmt.Errorf("not configured")
}

type mockHealth struct {
	healthy bool
}

func (m *mockHealth) Healthy(ctx context.Context) bool { return m.healthy }

func newRecommendTestRouter(engine Recommender, health HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewRecommendHandler(engine, health).RegisterRoutes(r)
	return r
}

func okResponse(req recommend.RecommendationRequest) (*recommend.RecommendationResponse, error) {
	return &recommend.RecommendationResponse{
		Products: []product.Product{{ID: 1, Name: "Serum", Price: 20, Stock: 3}},
		Count:    1,
		Reasons:  map[string][]string{"1": {"Currently in stock"}},
	}, nil
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		recommendFn    func(recommend.RecommendationRequest) (*recommend.RecommendationResponse, error)
		expectedStatus int
	}{
		{
			name:           "success - full profile",
			body:           `{"skinProfile":{"skinType":"dry","concerns":["acne"]},"limit":5,"strategy":"hybrid"}`,
			recommendFn:    okResponse,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "success - empty profile",
			body:           `{"skinProfile":{}}`,
			recommendFn:    okResponse,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - limit too large",
			body:           `{"skinProfile":{},"limit":100}`,
			recommendFn:    nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - unknown strategy",
			body:           `{"skinProfile":{},"strategy":"random"}`,
			recommendFn:    nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - malformed JSON",
			body:           `{"skinProfile":`,
			recommendFn:    nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad gateway - engine failure",
			body: `{"skinProfile":{}}`,
			recommendFn: func(recommend.RecommendationRequest) (*recommend.RecommendationResponse, error) {
				return nil, fmt.Errorf("product API unreachable")
			},
			expectedStatus: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRecommendTestRouter(&mockEngine{recommendFn: tt.recommendFn}, &mockHealth{healthy: true})
			req, _ := http.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestQuickRecommend(t *testing.T) {
	engine := &mockEngine{recommendFn: okResponse}
	router := newRecommendTestRouter(engine, &mockHealth{healthy: true})

	req, _ := http.NewRequest(http.MethodGet, "/api/recommendations/quick?skinType=oily&concerns=acne,%20oiliness&limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if engine.lastRequest.SkinProfile.SkinType != "oily" {
		t.Errorf("skinType not forwarded: %+v", engine.lastRequest)
	}
	if len(engine.lastRequest.SkinProfile.Concerns) != 2 || engine.lastRequest.SkinProfile.Concerns[1] != "oiliness" {
		t.Errorf("concerns not parsed: %v", engine.lastRequest.SkinProfile.Concerns)
	}
	if engine.lastRequest.Limit != 5 {
		t.Errorf("limit not forwarded: %d", engine.lastRequest.Limit)
	}
}

func TestQuickRecommendBadLimit(t *testing.T) {
	router := newRecommendTestRouter(&mockEngine{}, &mockHealth{})
	req, _ := http.NewRequest(http.MethodGet, "/api/recommendations/quick?limit=0", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 got %d", w.Code)
	}
}

func TestRecommendHealth(t *testing.T) {
	router := newRecommendTestRouter(&mockEngine{}, &mockHealth{healthy: true})
	req, _ := http.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["ok"] != true || body["productApiConnected"] != true {
		t.Errorf("unexpected health body: %v", body)
	}
}
