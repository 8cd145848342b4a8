package engine

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/cosmassist/platform/internal/product"
	"github.com/cosmassist/platform/internal/recommend"
)

// CatalogSource supplies products to rank.
type CatalogSource interface {
	Products(ctx context.Context, params product.ListParams) ([]product.Product, error)
}

// Explainer turns ranked products into per-product explanations. May be nil.
type Explainer interface {
	Available() bool
	BatchExplanations(ctx context.Context, profileSummary string, products []recommend.ProductSummary) (map[string]string, error)
}

// Engine ranks catalog products against a skin profile and explains the
// result. Explanations come from the LLM when one is configured, falling back
// to rule-based reasons per product.
type Engine struct {
	catalog   CatalogSource
	explainer Explainer
}

func NewEngine(catalog CatalogSource, explainer Explainer) *Engine {
	return &Engine{catalog: catalog, explainer: explainer}
}

// Recommend runs a full recommendation pass for the request.
func (e *Engine) Recommend(ctx context.Context, req recommend.RecommendationRequest) (*recommend.RecommendationResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	products, err := e.fetchProducts(ctx, req.SkinProfile)
	if err != nil {
		return nil, err
	}
	products = filterExcluded(products, req.SkinProfile.ExcludeProducts)

	if len(products) == 0 {
		return &recommend.RecommendationResponse{
			Products: []product.Product{},
			Count:    0,
			Reasons:  map[string][]string{},
		}, nil
	}

	var scored []ScoredProduct
	switch strings.ToLower(req.Strategy) {
	case recommend.StrategyContent:
		scored = RankByContent(products, req.SkinProfile)
	case recommend.StrategyPopularity:
		scored = RankByPopularity(products)
	default:
		scored = RankHybrid(products, req.SkinProfile)
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	top := make([]product.Product, 0, len(scored))
	for _, sp := range scored {
		top = append(top, sp.Product)
	}

	return &recommend.RecommendationResponse{
		Products: top,
		Count:    len(top),
		Reasons:  e.explain(ctx, scored, req.SkinProfile),
	}, nil
}

// fetchProducts pulls candidates from the catalog. With category preferences
// it gathers each preferred category plus a general backup batch, deduped;
// otherwise one large batch.
func (e *Engine) fetchProducts(ctx context.Context, profile recommend.SkinProfile) ([]product.Product, error) {
	if len(profile.PreferredCategories) == 0 {
		return e.catalog.Products(ctx, product.ListParams{Limit: 200})
	}

	seen := make(map[int]bool)
	var all []product.Product
	add := func(products []product.Product) {
		for _, p := range products {
			if !seen[p.ID] {
				all = append(all, p)
				seen[p.ID] = true
			}
		}
	}

	for _, category := range profile.PreferredCategories {
		categoryProducts, err := e.catalog.Products(ctx, product.ListParams{Category: category, Limit: 50})
		if err != nil {
			log.Printf("Failed to fetch category %s: %v", category, err)
			continue
		}
		add(categoryProducts)
	}

	if len(all) > 0 {
		if backup, err := e.catalog.Products(ctx, product.ListParams{Limit: 100}); err == nil {
			add(backup)
		}
		return all, nil
	}
	return e.catalog.Products(ctx, product.ListParams{Limit: 200})
}

func (e *Engine) explain(ctx context.Context, scored []ScoredProduct, profile recommend.SkinProfile) map[string][]string {
	reasons := make(map[string][]string, len(scored))

	var batch map[string]string
	if e.explainer != nil && e.explainer.Available() && len(scored) > 0 {
		summaries := make([]recommend.ProductSummary, 0, len(scored))
		for _, sp := range scored {
			description := sp.Product.Description
			if description == "" {
				description = sp.Product.Name
			}
			summaries = append(summaries, recommend.ProductSummary{
				ID:          sp.Product.ID,
				Name:        sp.Product.Name,
				Description: description,
			})
		}
		var err error
		batch, err = e.explainer.BatchExplanations(ctx, profile.Summary(), summaries)
		if err != nil {
			log.Printf("Batch explanation failed, using rule-based reasons: %v", err)
			batch = nil
		}
	}

	for _, sp := range scored {
		key := strconv.Itoa(sp.Product.ID)
		if explanation, ok := batch[key]; ok {
			reasons[key] = []string{explanation}
			continue
		}
		reasons[key] = ContentReasons(sp.Product, profile)
	}
	return reasons
}

func filterExcluded(products []product.Product, exclude []int) []product.Product {
	if len(exclude) == 0 {
		return products
	}
	excluded := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	kept := products[:0]
	for _, p := range products {
		if !excluded[p.ID] {
			kept = append(kept, p)
		}
	}
	return kept
}
