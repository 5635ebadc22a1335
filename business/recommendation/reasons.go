package recommendation

import (
	"fmt"

	"marketReco/domain"
)

const (
	nearbyKm           = 10.0
	wellRatedThreshold = 4.0
	fallbackReason     = "Recommended for you"
)

// explain lists the signals that apply to the item. The result always has
// at least one entry.
func explain(item domain.Candidate, uc domain.UserContext) []string {
	var reasons []string

	if n := len(similarPurchases(item, uc.Purchases)); n == 1 {
		reasons = append(reasons, "You bought 1 similar item")
	} else if n > 1 {
		reasons = append(reasons, fmt.Sprintf("You bought %d similar items", n))
	}

	if promo, ok := activePromotion(item, uc.Promotions, uc.Now); ok {
		reasons = append(reasons, fmt.Sprintf("%d%% discount available", promo.DiscountPercent))
	}

	if km, ok := distanceTo(item, uc.Location); ok && km < nearbyKm {
		reasons = append(reasons, fmt.Sprintf("Close to your location (%d km)", int(km)))
	}

	if r := item.Rating; r != nil && r.Count > 0 && r.Average >= wellRatedThreshold {
		reasons = append(reasons, fmt.Sprintf("Well rated (%.1f/5.0)", r.Average))
	}

	if len(reasons) == 0 {
		return []string{fallbackReason}
	}
	return reasons
}
