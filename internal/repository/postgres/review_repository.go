package postgres

import (
	"context"
	"fmt"

	"marketReco/business/recommendation"
	"marketReco/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

var _ recommendation.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID uint) ([]domain.UserReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var reviews []domain.Review
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	out := make([]domain.UserReview, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, rv.ToUserReview())
	}
	return out, nil
}
