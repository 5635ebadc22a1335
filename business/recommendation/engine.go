package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"marketReco/domain"
	"marketReco/pkg/logger"
)

// Engine ranks a candidate catalog for one user. It holds only its
// configuration, so one Engine may serve any number of concurrent calls.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

func (e *Engine) Weights() Weights {
	return e.cfg.Weights
}

// Generate scores every candidate, sorts by score descending (equal
// scores keep catalog order), keeps the top N and explains each pick.
func (e *Engine) Generate(
	ctx context.Context,
	catalog []domain.Candidate,
	uc domain.UserContext,
) (*Recommendations, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if err := validateCatalog(catalog); err != nil {
		GenerateTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, err
	}
	if err := validateUserContext(uc); err != nil {
		GenerateTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, err
	}

	scored, err := e.scoreAll(ctx, catalog, uc)
	if err != nil {
		GenerateTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > e.cfg.TopN {
		scored = scored[:e.cfg.TopN]
	}
	for i := range scored {
		scored[i].Reasons = explain(scored[i].Item, uc)
	}

	CandidatesScoredTotal.Add(float64(len(catalog)))
	GenerateDuration.Observe(time.Since(start).Seconds())
	GenerateTotal.WithLabelValues(outcomeOK).Inc()

	logger.Debug("recommendation_generate",
		"trace_id", TraceIDFromContext(ctx),
		"candidate_count", len(catalog),
		"returned", len(scored),
		"workers", e.cfg.Workers,
	)

	return newRecommendations(scored), nil
}

// scoreAll fans scoring out over contiguous chunks of the catalog. Each
// worker writes only its own slots; Wait is the join before sorting.
func (e *Engine) scoreAll(
	ctx context.Context,
	catalog []domain.Candidate,
	uc domain.UserContext,
) ([]domain.RecommendedItem, error) {
	scored := make([]domain.RecommendedItem, len(catalog))
	if len(catalog) == 0 {
		return scored, nil
	}

	workers := e.cfg.Workers
	if workers > len(catalog) {
		workers = len(catalog)
	}
	chunk := (len(catalog) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(catalog); lo += chunk {
		hi := min(lo+chunk, len(catalog))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("context error: %w", err)
				}
				score, factors := ScoreCandidate(catalog[i], uc, e.cfg.Weights)
				scored[i] = domain.RecommendedItem{
					Item:    catalog[i],
					Score:   score,
					Factors: factors,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}
