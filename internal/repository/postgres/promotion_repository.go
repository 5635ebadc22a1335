package postgres

import (
	"context"
	"fmt"
	"time"

	"marketReco/business/recommendation"
	"marketReco/domain"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	DB *gorm.DB
}

var _ recommendation.PromotionRepository = (*PromotionRepository)(nil)

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

// FindActive returns promotions that have started by at and not yet ended.
// The engine re-checks EndsAt against its own clock.
func (r *PromotionRepository) FindActive(ctx context.Context, at time.Time) ([]domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductPromotion
	err := r.DB.WithContext(ctx).
		Where("starts_at <= ? AND (ends_at IS NULL OR ends_at >= ?)", at, at).
		Order("discount_percent DESC, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find promotions: %w", err)
	}

	promotions := make([]domain.Promotion, 0, len(rows))
	for _, p := range rows {
		promotions = append(promotions, p.ToPromotion())
	}
	return promotions, nil
}
