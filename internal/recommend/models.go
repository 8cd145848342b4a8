package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/cosmassist/platform/internal/product"
)

// Ranking strategies.
const (
	StrategyContent    = "content"
	StrategyPopularity = "popularity"
	StrategyHybrid     = "hybrid"
)

// BudgetRange bounds acceptable prices. Either side may be omitted.
type BudgetRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Normalize fills the open ends: no min means 0, no max means unbounded.
func (b *BudgetRange) Normalize() (float64, float64) {
	min, max := 0.0, math.Inf(1)
	if b == nil {
		return min, max
	}
	if b.Min != nil {
		min = *b.Min
	}
	if b.Max != nil {
		max = *b.Max
	}
	return min, max
}

// SkinProfile carries the user's preferences. All fields optional.
type SkinProfile struct {
	SkinType            string       `json:"skinType"`
	Concerns            []string     `json:"concerns"`
	PreferredCategories []string     `json:"preferredCategories"`
	BudgetRange         *BudgetRange `json:"budgetRange"`
	ExcludeProducts     []int        `json:"excludeProducts"`
}

// RecommendationRequest is the POST body.
type RecommendationRequest struct {
	SkinProfile SkinProfile `json:"skinProfile"`
	Limit       int         `json:"limit" validate:"omitempty,gte=1,lte=50"`
	Strategy    string      `json:"strategy" validate:"omitempty,oneof=content popularity hybrid"`
}

// RecommendationResponse lists the ranked products with per-product reasons
// keyed by the product id as a string.
type RecommendationResponse struct {
	Products []product.Product   `json:"products"`
	Count    int                 `json:"count"`
	Reasons  map[string][]string `json:"reasons"`
}

// ProductSummary is the slice of a product an explanation generator needs.
type ProductSummary struct {
	ID          int
	Name        string
	Description string
}

// Summary renders the profile for an explanation prompt.
func (p SkinProfile) Summary() string {
	var parts []string
	if p.SkinType != "" {
		parts = append(parts, "Skin type: "+p.SkinType)
	}
	if len(p.Concerns) > 0 {
		parts = append(parts, "Concerns: "+strings.Join(p.Concerns, ", "))
	}
	if p.BudgetRange != nil {
		min, max := p.BudgetRange.Normalize()
		if math.IsInf(max, 1) {
			parts = append(parts, fmt.Sprintf("Budget: from $%.2f", min))
		} else {
			parts = append(parts, fmt.Sprintf("Budget: $%.2f - $%.2f", min, max))
		}
	}
	if len(parts) == 0 {
		return "No specific preferences"
	}
	return strings.Join(parts, "; ")
}
