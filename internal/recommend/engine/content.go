package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cosmassist/platform/internal/product"
	"github.com/cosmassist/platform/internal/recommend"
)

// Keywords a product description may carry per skin type.
var skinTypeKeywords = map[string][]string{
	"dry":         {"dry", "hydrating", "moisturizing", "nourishing", "moisture"},
	"oily":        {"oil-free", "matte", "non-comedogenic", "lightweight", "sebum", "oil control"},
	"combination": {"balance", "combination", "normal", "balanced"},
	"sensitive":   {"sensitive", "gentle", "hypoallergenic", "fragrance-free", "calming", "soothing"},
	"normal":      {"normal", "suitable for all", "universal"},
}

// Keywords a product description may carry per skin concern.
var concernKeywords = map[string][]string{
	"acne":        {"acne", "pimple", "blemish", "breakout", "salicylic", "anti-acne", "clearing"},
	"aging":       {"anti-aging", "wrinkle", "fine line", "collagen", "retinol", "anti-wrinkle", "aging"},
	"darkspots":   {"dark spot", "hyperpigmentation", "brightening", "vitamin c", "lightening", "pigment"},
	"dryness":     {"dry", "hydration", "moisture", "dehydration", "hydrating"},
	"oiliness":    {"oil", "sebum", "pore", "matte", "oil control", "oily"},
	"sensitivity": {"sensitive", "calming", "soothing", "irritation", "gentle"},
}

// countKeywords returns how many of the keywords occur in text.
func countKeywords(text string, keywords []string) int {
	if text == "" {
		return 0
	}
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

// ContentScore rates a product for the profile. Base 50, additive rules for
// budget fit, category preference, stock and description keyword matches,
// floored at 0.
func ContentScore(p product.Product, profile recommend.SkinProfile) float64 {
	score := 50.0

	if profile.BudgetRange != nil {
		min, max := profile.BudgetRange.Normalize()
		switch {
		case p.Price >= min && p.Price <= max:
			score += 20
		case p.Price > max:
			score -= 30
		case p.Price < min:
			score += 5
		}
	}

	if p.Category != "" {
		if len(profile.PreferredCategories) > 0 {
			if containsString(profile.PreferredCategories, p.Category) {
				score += 25
			}
		} else {
			score += 10
		}
	}

	if p.Stock <= 0 {
		score -= 50
	} else {
		score += 5
	}

	description := strings.ToLower(p.Name + " " + p.Description)

	if p.Description != "" && profile.SkinType != "" {
		if keywords, ok := skinTypeKeywords[strings.ToLower(profile.SkinType)]; ok {
			if matches := countKeywords(description, keywords); matches > 0 {
				score += 15
				if matches > 1 {
					score += 5
				}
			}
		}
	}

	if p.Description != "" {
		for _, concern := range profile.Concerns {
			keywords, ok := concernKeywords[strings.ToLower(concern)]
			if !ok {
				continue
			}
			if matches := countKeywords(description, keywords); matches > 0 {
				score += 10
				if matches > 1 {
					score += 3
				}
			}
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// ContentReasons builds the rule-based explanation list for a product.
func ContentReasons(p product.Product, profile recommend.SkinProfile) []string {
	var reasons []string

	if p.Category != "" && containsString(profile.PreferredCategories, p.Category) {
		reasons = append(reasons, "Matches your preferred category: "+p.Category)
	}

	if profile.BudgetRange != nil {
		min, max := profile.BudgetRange.Normalize()
		switch {
		case p.Price >= min && p.Price <= max:
			reasons = append(reasons, fmt.Sprintf("Within your budget ($%.2f - $%.2f)", min, max))
		case p.Price < min:
			reasons = append(reasons, "Below your budget range")
		case p.Price > max:
			reasons = append(reasons, "Above your budget range")
		}
	}

	description := strings.ToLower(p.Name + " " + p.Description)

	if p.Description != "" && profile.SkinType != "" {
		if keywords, ok := skinTypeKeywords[strings.ToLower(profile.SkinType)]; ok {
			if countKeywords(description, keywords) > 0 {
				reasons = append(reasons, "Suitable for "+profile.SkinType+" skin")
			}
		}
	}

	if p.Description != "" {
		var matched []string
		for _, concern := range profile.Concerns {
			if keywords, ok := concernKeywords[strings.ToLower(concern)]; ok {
				if countKeywords(description, keywords) > 0 {
					matched = append(matched, concern)
				}
			}
		}
		if len(matched) > 0 {
			reasons = append(reasons, "Addresses your concerns: "+strings.Join(matched, ", "))
		}
	}

	if p.Stock > 0 {
		reasons = append(reasons, "Currently in stock")
	} else {
		reasons = append(reasons, "Note: Currently out of stock")
	}

	return reasons
}

// ScoredProduct pairs a product with its ranking score.
type ScoredProduct struct {
	Product product.Product
	Score   float64
}

// RankByContent scores every product against the profile and sorts descending.
func RankByContent(products []product.Product, profile recommend.SkinProfile) []ScoredProduct {
	scored := make([]ScoredProduct, 0, len(products))
	for _, p := range products {
		scored = append(scored, ScoredProduct{Product: p, Score: ContentScore(p, profile)})
	}
	sortByScore(scored)
	return scored
}

func sortByScore(scored []ScoredProduct) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
