package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cosmassist/platform/internal/recommend"
)

const defaultBaseURL = "https://api.openai.com/v1"

const explanationSystemPrompt = `You are a cosmetic product recommendation expert.
Generate concise, personalized explanations for why each product is recommended based on the user's skin profile.
Keep each explanation brief (1-2 sentences) and focus on how each product addresses the user's specific needs.
Return your response as a JSON object where each key is the product ID (as a string) and the value is the explanation for that product.`

// Client talks to an OpenAI-compatible chat completions endpoint. A client
// without an API key is valid but reports unavailable, so callers degrade to
// rule-based explanations.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if apiKey == "" {
		log.Printf("LLM_API_KEY not set, LLM explanations disabled")
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Available() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// BatchExplanations produces one explanation per product in a single chat
// completion call. The model is asked for a JSON object keyed by product id.
func (c *Client) BatchExplanations(ctx context.Context, profileSummary string, products []recommend.ProductSummary) (map[string]string, error) {
	if !c.Available() {
		return nil, fmt.Errorf("llm client not configured")
	}
	if len(products) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, p := range products {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Product ID: %d\nProduct: %s\nDescription: %s", p.ID, p.Name, p.Description)
	}

	userPrompt := fmt.Sprintf(`Explain why each of these products is recommended for this user:

User Profile: %s

Products:
%s

Generate brief, personalized explanations for each product. Return your response as a JSON object with product IDs as keys and explanations as values.
Example format: {"1": "This product...", "2": "This product..."}`, profileSummary, sb.String())

	maxTokens := 150 * len(products)
	if maxTokens > 2000 {
		maxTokens = 2000
	}

	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: explanationSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, err
	}

	explanations, err := parseExplanations(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse explanations: %w", err)
	}
	return explanations, nil
}

func (c *Client) complete(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode chat completion: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// parseExplanations extracts the id-to-explanation object from the model
// output, tolerating markdown code fences and surrounding prose.
func parseExplanations(content string) (map[string]string, error) {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			content = content[start : end+1]
		}
	}

	var explanations map[string]string
	if err := json.Unmarshal([]byte(content), &explanations); err != nil {
		return nil, err
	}
	return explanations, nil
}
