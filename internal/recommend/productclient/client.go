package productclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cosmassist/platform/internal/events"
	"github.com/cosmassist/platform/internal/product"
	sharedredis "github.com/cosmassist/platform/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey = "recommend:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// Client reads the catalog from the product service over HTTP. Unfiltered
// reads are served from a Redis-cached snapshot that product events
// invalidate; filtered reads always go to the service.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *sharedredis.ViewCache[[]product.Product]
}

func NewClient(baseURL string, redisClient *goredis.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   sharedredis.NewViewCache[[]product.Product](redisClient, catalogCacheTTL),
	}
}

// Products lists catalog entries matching params.
func (c *Client) Products(ctx context.Context, params product.ListParams) ([]product.Product, error) {
	cacheable := params.Query == "" && params.Category == "" && params.Offset == 0
	if cacheable {
		if cached, ok := c.cache.Get(ctx, catalogCacheKey); ok {
			products := *cached
			if params.Limit > 0 && len(products) > params.Limit {
				products = products[:params.Limit]
			}
			return products, nil
		}
	}

	products, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	if cacheable {
		c.cache.Set(ctx, catalogCacheKey, &products)
	}
	return products, nil
}

// Invalidate drops the cached catalog snapshot.
func (c *Client) Invalidate(ctx context.Context) {
	c.cache.Delete(ctx, catalogCacheKey)
}

// Healthy reports whether the product API answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) fetch(ctx context.Context, params product.ListParams) ([]product.Product, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("q", params.Query)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.Limit > 0 {
		limit := params.Limit
		if limit > 100 {
			limit = 100
		}
		query.Set("limit", strconv.Itoa(limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}

	endpoint := c.baseURL + "/api/products"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product API returned status %d", resp.StatusCode)
	}

	var products []product.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product API response: %w", err)
	}
	return products, nil
}

// InvalidationHandler returns an event handler that drops the catalog
// snapshot on any product mutation event.
func (c *Client) InvalidationHandler() events.Handler {
	return func(ctx context.Context, event events.Event) error {
		log.Printf("Invalidating catalog cache on %s", event.Type)
		c.Invalidate(ctx)
		return nil
	}
}
