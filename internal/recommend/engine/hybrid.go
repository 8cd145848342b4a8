package engine

import (
	"github.com/cosmassist/platform/internal/product"
	"github.com/cosmassist/platform/internal/recommend"
)

const (
	contentWeight    = 0.7
	popularityWeight = 0.3
)

// RankHybrid blends content-based and popularity scores per product.
// Weights are normalized so the blend stays stable if they are retuned.
func RankHybrid(products []product.Product, profile recommend.SkinProfile) []ScoredProduct {
	if len(products) == 0 {
		return nil
	}

	total := contentWeight + popularityWeight
	cw := contentWeight / total
	pw := popularityWeight / total

	pc := newPopularityContext(products)
	scored := make([]ScoredProduct, 0, len(products))
	for _, p := range products {
		score := cw*ContentScore(p, profile) + pw*popularityScore(p, pc)
		scored = append(scored, ScoredProduct{Product: p, Score: score})
	}
	sortByScore(scored)
	return scored
}
