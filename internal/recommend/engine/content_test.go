package engine

import (
	"testing"
	"time"

	"github.com/cosmassist/platform/internal/product"
	"github.com/cosmassist/platform/internal/recommend"
)

func floatPtr(f float64) *float64 { return &f }

func TestContentScore(t *testing.T) {
	tests := []struct {
		name     string
		product  product.Product
		profile  recommend.SkinProfile
		expected float64
	}{
		{
			name:     "base score with stock bonus only",
			product:  product.Product{Name: "Plain", Price: 10, Stock: 3},
			profile:  recommend.SkinProfile{},
			expected: 55, // 50 base + 5 in stock
		},
		{
			name:     "out of stock penalty",
			product:  product.Product{Name: "Plain", Price: 10, Stock: 0},
			profile:  recommend.SkinProfile{},
			expected: 0, // 50 - 50
		},
		{
			name:    "within budget",
			product: product.Product{Name: "Plain", Price: 15, Stock: 1},
			profile: recommend.SkinProfile{
				BudgetRange: &recommend.BudgetRange{Min: floatPtr(10), Max: floatPtr(20)},
			},
			expected: 75, // 50 + 20 budget + 5 stock
		},
		{
			name:    "above budget",
			product: product.Product{Name: "Plain", Price: 99, Stock: 1},
			profile: recommend.SkinProfile{
				BudgetRange: &recommend.BudgetRange{Max: floatPtr(20)},
			},
			expected: 25, // 50 - 30 budget + 5 stock
		},
		{
			name:    "below minimum budget",
			product: product.Product{Name: "Plain", Price: 5, Stock: 1},
			profile: recommend.SkinProfile{
				BudgetRange: &recommend.BudgetRange{Min: floatPtr(10)},
			},
			expected: 60, // 50 + 5 budget + 5 stock
		},
		{
			name:     "preferred category match",
			product:  product.Product{Name: "Plain", Price: 10, Stock: 1, Category: "Serum"},
			profile:  recommend.SkinProfile{PreferredCategories: []string{"Serum"}},
			expected: 80, // 50 + 25 category + 5 stock
		},
		{
			name:     "has category without preference",
			product:  product.Product{Name: "Plain", Price: 10, Stock: 1, Category: "Serum"},
			profile:  recommend.SkinProfile{},
			expected: 65, // 50 + 10 category + 5 stock
		},
		{
			name: "single skin type keyword",
			product: product.Product{
				Name:        "Night Cream",
				Description: "A nourishing cream for tired skin",
				Price:       10, Stock: 1,
			},
			profile:  recommend.SkinProfile{SkinType: "dry"},
			expected: 70, // 50 + 5 stock + 15 skin type
		},
		{
			name: "multiple skin type keywords",
			product: product.Product{
				Name:        "Night Cream",
				Description: "A hydrating, nourishing cream that locks in moisture",
				Price:       10, Stock: 1,
			},
			profile:  recommend.SkinProfile{SkinType: "dry"},
			expected: 75, // 50 + 5 stock + 15 + 5 multi
		},
		{
			name: "concern match",
			product: product.Product{
				Name:        "Spot Treatment",
				Description: "Fights acne overnight",
				Price:       10, Stock: 1,
			},
			profile:  recommend.SkinProfile{Concerns: []string{"acne"}},
			expected: 65, // 50 + 5 stock + 10 concern
		},
		{
			name: "concern match with multiple keywords",
			product: product.Product{
				Name:        "Spot Treatment",
				Description: "Salicylic acid formula that fights acne and blemish marks",
				Price:       10, Stock: 1,
			},
			profile:  recommend.SkinProfile{Concerns: []string{"acne"}},
			expected: 68, // 50 + 5 stock + 10 + 3 multi
		},
		{
			name: "unknown concern is ignored",
			product: product.Product{
				Name:        "Spot Treatment",
				Description: "Fights acne overnight",
				Price:       10, Stock: 1,
			},
			profile:  recommend.SkinProfile{Concerns: []string{"frizz"}},
			expected: 55,
		},
		{
			name: "score floors at zero",
			product: product.Product{
				Name:  "Pricey",
				Price: 500, Stock: 0,
			},
			profile: recommend.SkinProfile{
				BudgetRange: &recommend.BudgetRange{Max: floatPtr(20)},
			},
			expected: 0, // 50 - 30 - 50 clamped
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContentScore(tt.product, tt.profile)
			if got != tt.expected {
				t.Errorf("[%s] expected score %.1f got %.1f", tt.name, tt.expected, got)
			}
		})
	}
}

func TestContentReasons(t *testing.T) {
	p := product.Product{
		Name:        "Vitamin C Serum",
		Description: "Brightening serum that fades dark spot marks, gentle on skin",
		Price:       25,
		Stock:       4,
		Category:    "Serum",
	}
	profile := recommend.SkinProfile{
		SkinType:            "sensitive",
		Concerns:            []string{"darkSpots"},
		PreferredCategories: []string{"Serum"},
		BudgetRange:         &recommend.BudgetRange{Min: floatPtr(10), Max: floatPtr(30)},
	}

	reasons := ContentReasons(p, profile)
	want := []string{
		"Matches your preferred category: Serum",
		"Within your budget ($10.00 - $30.00)",
		"Suitable for sensitive skin",
		"Addresses your concerns: darkSpots",
		"Currently in stock",
	}
	if len(reasons) != len(want) {
		t.Fatalf("expected %d reasons got %d: %v", len(want), len(reasons), reasons)
	}
	for i := range want {
		if reasons[i] != want[i] {
			t.Errorf("reason %d: expected %q got %q", i, want[i], reasons[i])
		}
	}
}

func TestRankByContentOrdersDescending(t *testing.T) {
	products := []product.Product{
		{ID: 1, Name: "Out of stock", Price: 10, Stock: 0},
		{ID: 2, Name: "Preferred", Price: 10, Stock: 5, Category: "Serum"},
		{ID: 3, Name: "Plain", Price: 10, Stock: 5},
	}
	profile := recommend.SkinProfile{PreferredCategories: []string{"Serum"}}

	ranked := RankByContent(products, profile)
	if ranked[0].Product.ID != 2 {
		t.Errorf("expected preferred-category product first, got id %d", ranked[0].Product.ID)
	}
	if ranked[len(ranked)-1].Product.ID != 1 {
		t.Errorf("expected out-of-stock product last, got id %d", ranked[len(ranked)-1].Product.ID)
	}
}

func TestRankByPopularity(t *testing.T) {
	now := time.Now()
	products := []product.Product{
		{ID: 1, Name: "Old niche", Price: 80, Stock: 0, Category: "Mask", CreatedAt: now.Add(-30 * 24 * time.Hour)},
		{ID: 2, Name: "Cheap popular", Price: 5, Stock: 10, Category: "Serum", CreatedAt: now},
		{ID: 3, Name: "Also serum", Price: 40, Stock: 3, Category: "Serum", CreatedAt: now.Add(-10 * 24 * time.Hour)},
	}

	ranked := RankByPopularity(products)
	if ranked[0].Product.ID != 2 {
		t.Errorf("expected cheap in-stock popular-category product first, got id %d", ranked[0].Product.ID)
	}
	if ranked[len(ranked)-1].Product.ID != 1 {
		t.Errorf("expected out-of-stock product last, got id %d", ranked[len(ranked)-1].Product.ID)
	}
}

func TestRankHybridBlendsScores(t *testing.T) {
	products := []product.Product{
		{ID: 1, Name: "Plain", Price: 10, Stock: 5},
		{ID: 2, Name: "Preferred", Price: 10, Stock: 5, Category: "Serum"},
	}
	profile := recommend.SkinProfile{PreferredCategories: []string{"Serum"}}

	ranked := RankHybrid(products, profile)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked products got %d", len(ranked))
	}
	if ranked[0].Product.ID != 2 {
		t.Errorf("expected content signal to dominate, got id %d first", ranked[0].Product.ID)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("scores not descending: %.2f then %.2f", ranked[0].Score, ranked[1].Score)
	}
}
