package postgres

import (
	"context"
	"fmt"

	"marketReco/business/recommendation"
	"marketReco/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

var _ recommendation.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// FindRecommendable returns in-stock products in id order, at most limit
// rows. A non-positive limit means no cap.
func (r *ProductRepository) FindRecommendable(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Where("quantity > ?", 0).
		Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var products []domain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}
