package recommendation

import (
	"context"
	"fmt"

	"marketReco/domain"
	"marketReco/pkg/logger"
)

// loadCandidates reads up to MaxCandidates products and keeps the
// eligible ones. The cap is the only backpressure on catalog size.
func (s *Service) loadCandidates(ctx context.Context, userID uint) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.repos.Products.FindRecommendable(ctx, s.cfg.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(products))
	for _, p := range products {
		if s.eligChecker != nil {
			ok, err := s.eligChecker.IsEligible(ctx, userID, p)
			if err != nil {
				logger.Warn("eligibility check failed",
					"trace_id", TraceIDFromContext(ctx),
					"product_id", p.ID,
					"error", err,
				)
				continue
			}
			if !ok {
				continue
			}
		}
		candidates = append(candidates, p.ToCandidate())
	}

	return candidates, nil
}
