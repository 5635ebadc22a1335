package recommendation

import (
	"fmt"
	"math"
	"runtime"
)

// Fixed factor weights. They sum to exactly 1.0.
const (
	WeightPurchaseHistory  = 0.35
	WeightReviews          = 0.25
	WeightPromotions       = 0.15
	WeightCategoryAffinity = 0.15
	WeightLocation         = 0.10
)

const (
	neutralScore     = 0.5
	noSimilarScore   = 0.3
	defaultTopN      = 20
	maxTopN          = 20
	defaultMaxWorker = 64
)

type Weights struct {
	PurchaseHistory  float64
	Reviews          float64
	Promotions       float64
	CategoryAffinity float64
	Location         float64
}

func DefaultWeights() Weights {
	return Weights{
		PurchaseHistory:  WeightPurchaseHistory,
		Reviews:          WeightReviews,
		Promotions:       WeightPromotions,
		CategoryAffinity: WeightCategoryAffinity,
		Location:         WeightLocation,
	}
}

// Sum adds the weights in declaration order.
func (w Weights) Sum() float64 {
	return w.PurchaseHistory + w.Reviews + w.Promotions + w.CategoryAffinity + w.Location
}

type Config struct {
	Weights Weights

	// TopN caps how many ranked items one call returns.
	TopN int

	// Workers bounds the scoring fan-out. Zero means GOMAXPROCS.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		TopN:    defaultTopN,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// normalize fills zero fields with defaults and rejects weights that do
// not form a convex combination.
func (c Config) normalize() (Config, error) {
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
	for _, w := range []float64{
		c.Weights.PurchaseHistory,
		c.Weights.Reviews,
		c.Weights.Promotions,
		c.Weights.CategoryAffinity,
		c.Weights.Location,
	} {
		if w < 0 || math.IsNaN(w) {
			return c, fmt.Errorf("%w: negative weight %v", ErrInvalidInput, w)
		}
	}
	if math.Abs(c.Weights.Sum()-1) > 1e-9 {
		return c, fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidInput, c.Weights.Sum())
	}
	if c.TopN <= 0 {
		c.TopN = defaultTopN
	}
	if c.TopN > maxTopN {
		return c, fmt.Errorf("%w: top n %d exceeds %d", ErrInvalidInput, c.TopN, maxTopN)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Workers > defaultMaxWorker {
		c.Workers = defaultMaxWorker
	}
	return c, nil
}
