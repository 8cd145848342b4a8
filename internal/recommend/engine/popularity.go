package engine

import (
	"time"

	"github.com/cosmassist/platform/internal/product"
)

// popularityContext holds the catalog-wide aggregates popularity scoring
// needs: category frequencies and the recency window.
type popularityContext struct {
	categoryCounts map[string]int
	newest         time.Time
	oldest         time.Time
}

func newPopularityContext(products []product.Product) popularityContext {
	pc := popularityContext{categoryCounts: make(map[string]int)}
	for _, p := range products {
		if p.Category != "" {
			pc.categoryCounts[p.Category]++
		}
		if p.CreatedAt.IsZero() {
			continue
		}
		if pc.newest.IsZero() || p.CreatedAt.After(pc.newest) {
			pc.newest = p.CreatedAt
		}
		if pc.oldest.IsZero() || p.CreatedAt.Before(pc.oldest) {
			pc.oldest = p.CreatedAt
		}
	}
	return pc
}

// popularityScore rates a product on availability, affordability, category
// frequency and recency.
func popularityScore(p product.Product, pc popularityContext) float64 {
	var score float64

	if p.Stock > 0 {
		score += 30
	} else {
		score -= 20
	}

	price := p.Price
	if price < 0.01 {
		price = 0.01
	}
	score += 50.0 / (1.0 + price)

	if p.Category != "" {
		score += 5.0 * float64(pc.categoryCounts[p.Category])
	}

	if !p.CreatedAt.IsZero() && pc.newest.After(pc.oldest) {
		window := pc.newest.Sub(pc.oldest).Seconds()
		age := p.CreatedAt.Sub(pc.oldest).Seconds()
		score += 10.0 * (age / window)
	}

	return score
}

// RankByPopularity sorts products by catalog-level popularity heuristics.
func RankByPopularity(products []product.Product) []ScoredProduct {
	pc := newPopularityContext(products)
	scored := make([]ScoredProduct, 0, len(products))
	for _, p := range products {
		scored = append(scored, ScoredProduct{Product: p, Score: popularityScore(p, pc)})
	}
	sortByScore(scored)
	return scored
}
