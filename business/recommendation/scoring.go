package recommendation

import "marketReco/domain"

// ScoreFactors runs the five factor scorers for one candidate.
func ScoreFactors(item domain.Candidate, uc domain.UserContext) domain.FactorScores {
	return domain.FactorScores{
		PurchaseHistory:  PurchaseHistoryScore(item, uc.Purchases, uc.Now),
		Reviews:          ReviewScore(item, uc.Reviews, uc.Purchases),
		Promotions:       PromotionScore(item, uc.Promotions, uc.Now),
		CategoryAffinity: CategoryScore(item, uc.CategoryWeights),
		Location:         ProximityScore(item, uc.Location),
	}
}

// Aggregate = Σ wᵢ·fᵢ, clamped to [0, 1].
func Aggregate(f domain.FactorScores, w Weights) float64 {
	score := w.PurchaseHistory*f.PurchaseHistory +
		w.Reviews*f.Reviews +
		w.Promotions*f.Promotions +
		w.CategoryAffinity*f.CategoryAffinity +
		w.Location*f.Location
	return clamp01(score)
}

// ScoreCandidate returns the final relevance score and its breakdown. It
// reads only its arguments and is safe to call concurrently.
func ScoreCandidate(item domain.Candidate, uc domain.UserContext, w Weights) (float64, domain.FactorScores) {
	f := ScoreFactors(item, uc)
	return Aggregate(f, w), f
}
