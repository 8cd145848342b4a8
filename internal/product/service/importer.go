package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cosmassist/platform/internal/events"
	"github.com/cosmassist/platform/internal/product"
)

const maxDescriptionLength = 5000

// Importer pulls catalog entries from an external JSON source and upserts
// them by name. It accepts any endpoint returning either an array of items or
// an object wrapping one under "products" or "items".
type Importer struct {
	service       *ProductService
	client        *http.Client
	defaultSource string
}

func NewImporter(service *ProductService, defaultSource string) *Importer {
	return &Importer{
		service:       service,
		client:        &http.Client{Timeout: 20 * time.Second},
		defaultSource: defaultSource,
	}
}

// ImportRequest configures a single import run.
type ImportRequest struct {
	Source string `json:"source"`
	Limit  int    `json:"limit" validate:"omitempty,gte=1,lte=200"`
}

// sourceItem is the loose shape external catalogs tend to use.
type sourceItem struct {
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
}

// Import fetches, normalizes and upserts items from the source. Returns the
// stored products in source order.
func (i *Importer) Import(ctx context.Context, req ImportRequest) ([]product.Product, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 12
	}
	source := req.Source
	if source == "" {
		source = i.defaultSource
	}

	items, err := i.fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from source: %w", err)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	var stored []product.Product
	for _, item := range items {
		normalized := normalizeItem(item)
		p, err := i.upsertByName(ctx, normalized)
		if err != nil {
			return nil, fmt.Errorf("import failed for %q: %w", normalized.Name, err)
		}
		stored = append(stored, *p)
	}

	i.service.publish(ctx, events.ProductImported, events.ProductImportedEvent{
		Count:  len(stored),
		Source: source,
	})
	return stored, nil
}

func (i *Importer) fetch(ctx context.Context, source string) ([]sourceItem, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := i.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Either a bare array, or an object wrapping one.
	var items []sourceItem
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Products []sourceItem `json:"products"`
		Items    []sourceItem `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected response format from source")
	}
	if wrapped.Products != nil {
		return wrapped.Products, nil
	}
	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	return nil, fmt.Errorf("unexpected response format from source")
}

func normalizeItem(item sourceItem) product.CreateProductRequest {
	name := item.Title
	if name == "" {
		name = item.Name
	}
	if name == "" {
		name = "Untitled"
	}

	description := item.Description
	if len(description) > maxDescriptionLength {
		description = description[:maxDescriptionLength]
	}

	image := item.Image
	if image == "" && len(item.Images) > 0 {
		image = item.Images[0]
	}

	return product.CreateProductRequest{
		Name:         name,
		Description:  description,
		Price:        item.Price,
		Stock:        item.Stock,
		Category:     item.Category,
		MainImageURL: image,
	}
}

func (i *Importer) upsertByName(ctx context.Context, req product.CreateProductRequest) (*product.Product, error) {
	existing, err := i.service.store.GetByName(ctx, req.Name)
	if errors.Is(err, product.ErrNotFound) {
		return i.service.Create(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	update := product.UpdateProductRequest{
		Description:  &req.Description,
		Price:        &req.Price,
		Stock:        &req.Stock,
		Category:     &req.Category,
		MainImageURL: &req.MainImageURL,
	}
	return i.service.Update(ctx, existing.ID, update)
}
