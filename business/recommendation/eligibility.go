package recommendation

import (
	"context"

	"marketReco/domain"
)

// EligibilityChecker decides if a catalog product may be recommended to a
// user at all (stock, visibility).
type EligibilityChecker interface {
	IsEligible(ctx context.Context, userID uint, product domain.Product) (bool, error)
}

// NoopEligibilityChecker allows everything.
type NoopEligibilityChecker struct{}

func (NoopEligibilityChecker) IsEligible(ctx context.Context, userID uint, product domain.Product) (bool, error) {
	return true, nil
}

// InStockEligibilityChecker drops products with nothing left to sell.
type InStockEligibilityChecker struct{}

func (InStockEligibilityChecker) IsEligible(ctx context.Context, userID uint, product domain.Product) (bool, error) {
	return product.Quantity > 0, nil
}
