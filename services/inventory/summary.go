package inventory

import (
	"github.com/antzucaro/matchr"
)

// Summary condenses one pipeline run for reporting: counts per
// category plus the price spread over items with a positive selling
// price.
type Summary struct {
	TotalItems  int
	FailedCount int
	Categories  map[string]int
	MinPrice    float64
	MaxPrice    float64
	AvgPrice    float64
	// total stock valuation: sum of quantity * selling price
	TotalValue float64
}

func Summarize(result *FetchResult) Summary {
	s := Summary{
		TotalItems:  len(result.Items),
		FailedCount: len(result.FailedIds),
		Categories:  map[string]int{},
	}

	var priced int
	for _, item := range result.Items {
		s.Categories[item.Category]++
		s.TotalValue += item.Quantity * item.SellingPrice

		if item.SellingPrice <= 0 {
			continue
		}
		if priced == 0 || item.SellingPrice < s.MinPrice {
			s.MinPrice = item.SellingPrice
		}
		if item.SellingPrice > s.MaxPrice {
			s.MaxPrice = item.SellingPrice
		}
		s.AvgPrice += item.SellingPrice
		priced++
	}
	if priced > 0 {
		s.AvgPrice /= float64(priced)
	}
	return s
}

// ClosestCategory suggests the most similar category name present in
// items, for when an exact-match category filter comes back empty.
// Returns "" when nothing clears the similarity bar.
func ClosestCategory(items []Item, category string) string {
	const threshold = 0.8

	best := ""
	var bestScore float64
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		score := matchr.JaroWinkler(category, item.Category, false)
		if score > bestScore {
			bestScore = score
			best = item.Category
		}
	}
	if bestScore < threshold {
		return ""
	}
	return best
}
