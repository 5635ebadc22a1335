package recommendation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"marketReco/domain"
	"marketReco/pkg/logger"
)

// ---- Repository interfaces ----

type ProductRepository interface {
	FindRecommendable(ctx context.Context, limit int) ([]domain.Product, error)
}

type PurchaseRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.UserPurchase, error)
}

type ReviewRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.UserReview, error)
}

type PromotionRepository interface {
	FindActive(ctx context.Context, at time.Time) ([]domain.Promotion, error)
}

type UserProfileRepository interface {
	GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error)
}

type SearchHistoryRepository interface {
	FindRecentQueries(ctx context.Context, userID uint, limit int) ([]string, error)
}

// BehaviorCache stores computed behavior summaries. The engine never
// caches; this is the service's choice.
type BehaviorCache interface {
	Get(ctx context.Context, userID uint) (domain.UserBehaviorPattern, bool, error)
	Set(ctx context.Context, userID uint, pattern domain.UserBehaviorPattern, ttl time.Duration) error
	Invalidate(ctx context.Context, userID uint) error
}

type Repositories struct {
	Products   ProductRepository
	Purchases  PurchaseRepository
	Reviews    ReviewRepository
	Promotions PromotionRepository
	Profiles   UserProfileRepository
	Searches   SearchHistoryRepository
}

type ServiceConfig struct {
	MaxCandidates      int
	SearchHistoryLimit int
	BehaviorCacheTTL   time.Duration
	// Location is the calendar the most-active hour is read in.
	Location *time.Location
}

const (
	defaultMaxCandidates      = 5000
	defaultSearchHistoryLimit = 200
	defaultBehaviorCacheTTL   = 15 * time.Minute
)

// ---- Service ----

type Service struct {
	repos       Repositories
	engine      *Engine
	cache       BehaviorCache
	eligChecker EligibilityChecker
	cfg         ServiceConfig
	now         func() time.Time
}

func NewService(
	repos Repositories,
	engine *Engine,
	cache BehaviorCache,
	eligChecker EligibilityChecker,
	cfg ServiceConfig,
) *Service {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = defaultMaxCandidates
	}
	if cfg.SearchHistoryLimit <= 0 {
		cfg.SearchHistoryLimit = defaultSearchHistoryLimit
	}
	if cfg.BehaviorCacheTTL <= 0 {
		cfg.BehaviorCacheTTL = defaultBehaviorCacheTTL
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		repos:       repos,
		engine:      engine,
		cache:       cache,
		eligChecker: eligChecker,
		cfg:         cfg,
		now:         time.Now,
	}
}

// WithClock replaces the wall clock used to stamp user contexts.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// LoadUserContext materializes every per-user signal the engine reads.
// The loads are independent and run in parallel.
func (s *Service) LoadUserContext(ctx context.Context, userID uint) (domain.UserContext, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserContext{}, fmt.Errorf("context error: %w", err)
	}

	now := s.now()
	uc := domain.UserContext{Now: now.UnixMilli()}
	var profile domain.UserProfile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		purchases, err := s.repos.Purchases.FindByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("load purchases: %w", err)
		}
		uc.Purchases = purchases
		return nil
	})
	g.Go(func() error {
		reviews, err := s.repos.Reviews.FindByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("load reviews: %w", err)
		}
		uc.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		promotions, err := s.repos.Promotions.FindActive(gctx, now)
		if err != nil {
			return fmt.Errorf("load promotions: %w", err)
		}
		uc.Promotions = promotions
		return nil
	})
	g.Go(func() error {
		p, err := s.repos.Profiles.GetProfile(gctx, userID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		searches, err := s.repos.Searches.FindRecentQueries(gctx, userID, s.cfg.SearchHistoryLimit)
		if err != nil {
			return fmt.Errorf("load search history: %w", err)
		}
		uc.SearchHistory = searches
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.UserContext{}, err
	}

	uc.Location = profile.Location
	uc.CategoryWeights = profile.CategoryWeights
	return uc, nil
}

// Recommend ranks the catalog for a user. A non-nil location overrides
// the one stored on the profile.
func (s *Service) Recommend(
	ctx context.Context,
	userID uint,
	location *domain.UserLocation,
) ([]domain.RecommendedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	uc, err := s.LoadUserContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if location != nil {
		uc.Location = location
	}

	candidates, err := s.loadCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Debug("recommendation_request",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"candidate_count", len(candidates),
		"purchase_count", len(uc.Purchases),
		"has_location", uc.Location != nil,
	)

	recs, err := s.engine.Generate(ctx, candidates, uc)
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	return recs.Collect(), nil
}

// AnalyzeUser returns the behavior summary for a user, served from the
// cache when possible. Cache failures are logged and skipped.
func (s *Service) AnalyzeUser(ctx context.Context, userID uint) (domain.UserBehaviorPattern, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserBehaviorPattern{}, fmt.Errorf("context error: %w", err)
	}

	tid := TraceIDFromContext(ctx)

	if s.cache != nil {
		pattern, ok, err := s.cache.Get(ctx, userID)
		switch {
		case err != nil:
			BehaviorCacheTotal.WithLabelValues("error").Inc()
			logger.Warn("behavior cache read failed", "trace_id", tid, "user_id", userID, "error", err)
		case ok:
			BehaviorCacheTotal.WithLabelValues("hit").Inc()
			return pattern, nil
		default:
			BehaviorCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	return s.analyze(ctx, userID)
}

// RefreshUserBehavior drops any cached summary and recomputes it from the
// repositories, e.g. right after the user placed an order.
func (s *Service) RefreshUserBehavior(ctx context.Context, userID uint) (domain.UserBehaviorPattern, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserBehaviorPattern{}, fmt.Errorf("context error: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			BehaviorCacheTotal.WithLabelValues("error").Inc()
			logger.Warn("behavior cache invalidate failed", "trace_id", TraceIDFromContext(ctx), "user_id", userID, "error", err)
		}
	}

	return s.analyze(ctx, userID)
}

// analyze loads the user's history, summarizes it and stores the result
// in the cache.
func (s *Service) analyze(ctx context.Context, userID uint) (domain.UserBehaviorPattern, error) {
	tid := TraceIDFromContext(ctx)

	var (
		purchases []domain.UserPurchase
		reviews   []domain.UserReview
		searches  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if purchases, err = s.repos.Purchases.FindByUser(gctx, userID); err != nil {
			return fmt.Errorf("load purchases: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if reviews, err = s.repos.Reviews.FindByUser(gctx, userID); err != nil {
			return fmt.Errorf("load reviews: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if searches, err = s.repos.Searches.FindRecentQueries(gctx, userID, s.cfg.SearchHistoryLimit); err != nil {
			return fmt.Errorf("load search history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.UserBehaviorPattern{}, err
	}

	pattern := AnalyzeUserPatternsIn(s.cfg.Location, purchases, reviews, searches)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, pattern, s.cfg.BehaviorCacheTTL); err != nil {
			logger.Warn("behavior cache write failed", "trace_id", tid, "user_id", userID, "error", err)
		}
	}

	logger.Debug("behavior_analyze",
		"trace_id", tid,
		"user_id", userID,
		"purchases", pattern.TotalPurchases,
		"reviews", pattern.TotalReviews,
	)

	return pattern, nil
}
