package recommendation

import (
	"math"
	"strings"

	"marketReco/domain"
)

const (
	decayPerDay         = 0.1
	priceSimilarityBand = 0.3
	frequencySaturation = 10.0
	millisPerDay        = 24 * 60 * 60 * 1000

	ownReviewWeight       = 0.7
	aggregateReviewWeight = 0.3

	// indirect ratings (on similar items the user bought) move the own
	// score only this far away from neutral
	similarRatingShrink = 0.5

	urgencyBoost = 1.2
)

// isSimilarPurchase prefers category/brand identity; price proximity is
// the fallback when the candidate carries neither.
func isSimilarPurchase(item domain.Candidate, p domain.UserPurchase) bool {
	if item.Category != nil || item.Brand != nil {
		if item.Category != nil && p.Category != "" && strings.EqualFold(*item.Category, p.Category) {
			return true
		}
		if item.Brand != nil && p.Brand != nil && strings.EqualFold(*item.Brand, *p.Brand) {
			return true
		}
		return false
	}
	// a free item has no price band to compare against
	if item.Price <= 0 {
		return false
	}
	return math.Abs(p.Price-item.Price) <= priceSimilarityBand*item.Price
}

func similarPurchases(item domain.Candidate, purchases []domain.UserPurchase) []domain.UserPurchase {
	var out []domain.UserPurchase
	for _, p := range purchases {
		if isSimilarPurchase(item, p) {
			out = append(out, p)
		}
	}
	return out
}

// PurchaseHistoryScore rewards candidates that resemble recent purchases.
// now is epoch millis.
func PurchaseHistoryScore(item domain.Candidate, purchases []domain.UserPurchase, now int64) float64 {
	if len(purchases) == 0 {
		return neutralScore
	}

	similar := similarPurchases(item, purchases)
	if len(similar) == 0 {
		return noSimilarScore
	}

	frequencyBonus := math.Min(float64(len(similar))/frequencySaturation, 1)
	base := 0.5 + frequencyBonus*0.5

	var total float64
	for _, p := range similar {
		days := float64(now-p.Timestamp) / millisPerDay
		if days < 0 {
			days = 0
		}
		total += base * math.Exp(-decayPerDay*days)
	}

	return clamp01(total / float64(len(similar)))
}

// ReviewScore blends the user's own ratings (70%) with the item's
// aggregate rating (30%). A missing side counts as neutral.
func ReviewScore(item domain.Candidate, reviews []domain.UserReview, purchases []domain.UserPurchase) float64 {
	own, hasOwn := ownRating(item, reviews, purchases)
	if !hasOwn {
		own = neutralScore
	}

	aggregate := neutralScore
	hasAggregate := item.Rating != nil && item.Rating.Count > 0
	if hasAggregate {
		aggregate = item.Rating.Average / 5
	}

	if !hasOwn && !hasAggregate {
		return neutralScore
	}

	return clamp01(own*ownReviewWeight + aggregate*aggregateReviewWeight)
}

// ownRating is the normalized average of the user's ratings of the item
// itself, falling back to ratings of similar items they bought.
func ownRating(item domain.Candidate, reviews []domain.UserReview, purchases []domain.UserPurchase) (float64, bool) {
	if avg, ok := averageRating(reviews, func(r domain.UserReview) bool { return r.ItemID == item.ID }); ok {
		return avg / 5, true
	}

	similarIDs := make(map[string]struct{})
	var purchaseRatings []float64
	for _, p := range similarPurchases(item, purchases) {
		similarIDs[p.ItemID] = struct{}{}
		if p.Rating != nil {
			purchaseRatings = append(purchaseRatings, *p.Rating)
		}
	}
	if len(similarIDs) == 0 {
		return 0, false
	}

	avg, ok := averageRating(reviews, func(r domain.UserReview) bool {
		_, hit := similarIDs[r.ItemID]
		return hit
	})
	if !ok && len(purchaseRatings) > 0 {
		var sum float64
		for _, r := range purchaseRatings {
			sum += r
		}
		avg, ok = sum/float64(len(purchaseRatings)), true
	}
	if !ok {
		return 0, false
	}

	return neutralScore + (avg/5-neutralScore)*similarRatingShrink, true
}

func averageRating(reviews []domain.UserReview, match func(domain.UserReview) bool) (float64, bool) {
	var sum float64
	var n int
	for _, r := range reviews {
		if match(r) {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// activePromotion finds the first promotion on the item that has not
// ended by now.
func activePromotion(item domain.Candidate, promotions []domain.Promotion, now int64) (domain.Promotion, bool) {
	for _, p := range promotions {
		if p.ItemID != item.ID {
			continue
		}
		if p.EndsAt != nil && *p.EndsAt < now {
			continue
		}
		return p, true
	}
	return domain.Promotion{}, false
}

func PromotionScore(item domain.Candidate, promotions []domain.Promotion, now int64) float64 {
	promo, ok := activePromotion(item, promotions, now)
	if !ok {
		return neutralScore
	}

	var score float64
	switch d := promo.DiscountPercent; {
	case d >= 50:
		score = 1.0
	case d >= 30:
		score = 0.8
	case d >= 20:
		score = 0.6
	case d >= 10:
		score = 0.4
	default:
		score = 0.2
	}

	if promo.Urgent {
		return math.Min(1, score*urgencyBoost)
	}
	return score
}

func CategoryScore(item domain.Candidate, weights map[string]float64) float64 {
	if item.Category == nil {
		return neutralScore
	}
	if w, ok := weights[*item.Category]; ok {
		return clamp01(w)
	}
	// case-insensitive fallback; the smallest matching key wins so the
	// result does not depend on map order
	match := ""
	found := false
	for category := range weights {
		if strings.EqualFold(category, *item.Category) && (!found || category < match) {
			match, found = category, true
		}
	}
	if found {
		return clamp01(weights[match])
	}
	return neutralScore
}

// ProximityScore is a step function of the distance between the user and
// the item.
func ProximityScore(item domain.Candidate, loc *domain.UserLocation) float64 {
	km, ok := distanceTo(item, loc)
	if !ok {
		return neutralScore
	}

	switch {
	case km < 5:
		return 1.0
	case km < 10:
		return 0.8
	case km < 25:
		return 0.6
	case km < 50:
		return 0.4
	default:
		return 0.2
	}
}
