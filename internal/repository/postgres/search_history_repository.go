package postgres

import (
	"context"
	"fmt"

	"marketReco/business/recommendation"
	"marketReco/domain"

	"gorm.io/gorm"
)

type SearchHistoryRepository struct {
	DB *gorm.DB
}

var _ recommendation.SearchHistoryRepository = (*SearchHistoryRepository)(nil)

func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{DB: db}
}

// FindRecentQueries returns the user's latest search queries, newest first.
func (r *SearchHistoryRepository) FindRecentQueries(ctx context.Context, userID uint, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Model(&domain.SearchHistory{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var queries []string
	if err := q.Pluck("query", &queries).Error; err != nil {
		return nil, fmt.Errorf("failed to find search history: %w", err)
	}
	return queries, nil
}
