package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"marketReco/business/recommendation"
	"marketReco/domain"

	"gorm.io/gorm"
)

// PurchaseRepository reads a user's purchase history from paid and
// completed order lines joined with the product they bought.
type PurchaseRepository struct {
	DB *gorm.DB
}

var _ recommendation.PurchaseRepository = (*PurchaseRepository)(nil)

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

type purchaseRow struct {
	ProductID       uint64    `gorm:"column:product_id"`
	ProductCategory string    `gorm:"column:product_category"`
	Brand           *string   `gorm:"column:brand"`
	PriceEach       float64   `gorm:"column:price_each"`
	Rating          *float64  `gorm:"column:rating"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (r *PurchaseRepository) FindByUser(ctx context.Context, userID uint) ([]domain.UserPurchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []purchaseRow
	err := r.DB.WithContext(ctx).
		Table("orders o").
		Select("o.product_id, p.product_category, p.brand, o.price_each, o.rating, o.created_at").
		Joins("JOIN products p ON p.id = o.product_id").
		Where("o.user_id = ? AND o.order_status IN ?", userID, []string{domain.OrderStatusPaid, domain.OrderStatusCompleted}).
		Order("o.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find purchases: %w", err)
	}

	purchases := make([]domain.UserPurchase, 0, len(rows))
	for _, row := range rows {
		purchases = append(purchases, domain.UserPurchase{
			ItemID:    strconv.FormatUint(row.ProductID, 10),
			Category:  row.ProductCategory,
			Price:     row.PriceEach,
			Brand:     row.Brand,
			Timestamp: row.CreatedAt.UnixMilli(),
			Rating:    row.Rating,
		})
	}

	return purchases, nil
}
