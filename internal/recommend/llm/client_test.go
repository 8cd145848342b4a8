package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cosmassist/platform/internal/recommend"
)

func TestClientUnavailableWithoutKey(t *testing.T) {
	client := NewClient("", "", "")
	if client.Available() {
		t.Error("client without an API key should report unavailable")
	}
}

func TestBatchExplanations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"1\": \"Hydrates dry skin.\", \"2\": \"Controls oil.\"}"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model", server.URL)
	explanations, err := client.BatchExplanations(context.Background(), "Skin type: dry", []recommend.ProductSummary{
		{ID: 1, Name: "Cream", Description: "Hydrating"},
		{ID: 2, Name: "Gel", Description: "Matte"},
	})
	if err != nil {
		t.Fatalf("batch explanations failed: %v", err)
	}
	if explanations["1"] != "Hydrates dry skin." || explanations["2"] != "Controls oil." {
		t.Errorf("unexpected explanations: %v", explanations)
	}
}

func TestBatchExplanationsFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Here you go:\n` + "```json\\n" + `{\"1\": \"Good fit.\"}\n` + "```" + `"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "", server.URL)
	explanations, err := client.BatchExplanations(context.Background(), "No specific preferences", []recommend.ProductSummary{
		{ID: 1, Name: "Cream", Description: "Hydrating"},
	})
	if err != nil {
		t.Fatalf("batch explanations failed: %v", err)
	}
	if explanations["1"] != "Good fit." {
		t.Errorf("unexpected explanations: %v", explanations)
	}
}

func TestBatchExplanationsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", "", server.URL)
	if _, err := client.BatchExplanations(context.Background(), "", []recommend.ProductSummary{{ID: 1, Name: "Cream"}}); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}
