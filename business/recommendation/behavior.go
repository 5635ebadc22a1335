package recommendation

import (
	"sort"
	"strings"
	"time"

	"marketReco/domain"
)

const (
	topCategoriesLimit  = 5
	topSearchTermsLimit = 10

	// reported when there is no purchase to derive an hour from
	defaultActiveHour = 12
)

// AnalyzeUserPatterns summarizes purchase, review and search history with
// hours evaluated in UTC.
func AnalyzeUserPatterns(purchases []domain.UserPurchase, reviews []domain.UserReview, searches []string) domain.UserBehaviorPattern {
	return AnalyzeUserPatternsIn(time.UTC, purchases, reviews, searches)
}

// AnalyzeUserPatternsIn is AnalyzeUserPatterns with purchase hours read
// in loc. Empty inputs degrade to zero values; it never fails.
func AnalyzeUserPatternsIn(loc *time.Location, purchases []domain.UserPurchase, reviews []domain.UserReview, searches []string) domain.UserBehaviorPattern {
	if loc == nil {
		loc = time.UTC
	}

	categories := make([]string, 0, len(purchases))
	for _, p := range purchases {
		if p.Category != "" {
			categories = append(categories, p.Category)
		}
	}

	var terms []string
	for _, q := range searches {
		for _, t := range strings.Fields(q) {
			terms = append(terms, strings.ToLower(t))
		}
	}

	return domain.UserBehaviorPattern{
		TopCategories:       topByFrequency(categories, topCategoriesLimit),
		PreferredPriceRange: priceRange(purchases),
		MostActiveHour:      mostActiveHour(purchases, loc),
		TopSearchTerms:      topByFrequency(terms, topSearchTermsLimit),
		AverageRatingGiven:  averageGiven(reviews),
		TotalPurchases:      len(purchases),
		TotalReviews:        len(reviews),
	}
}

// topByFrequency orders distinct values by count, descending. Equal
// counts keep first-occurrence order.
func topByFrequency(values []string, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}

func priceRange(purchases []domain.UserPurchase) domain.PriceRange {
	if len(purchases) == 0 {
		return domain.PriceRange{}
	}

	lo, hi := purchases[0].Price, purchases[0].Price
	var sum float64
	for _, p := range purchases {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
		sum += p.Price
	}

	return domain.PriceRange{
		Min:     lo,
		Max:     &hi,
		Average: sum / float64(len(purchases)),
	}
}

// mostActiveHour picks the hour with the most purchases; ties go to the
// hour seen first in purchase order.
func mostActiveHour(purchases []domain.UserPurchase, loc *time.Location) int {
	var counts [24]int
	var order []int
	for _, p := range purchases {
		h := time.UnixMilli(p.Timestamp).In(loc).Hour()
		if counts[h] == 0 {
			order = append(order, h)
		}
		counts[h]++
	}

	best := defaultActiveHour
	bestCount := 0
	for _, h := range order {
		if counts[h] > bestCount {
			best, bestCount = h, counts[h]
		}
	}
	return best
}

func averageGiven(reviews []domain.UserReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}
