package domain

import (
	"strconv"
	"time"
)

// CREATE TABLE public.promotions (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id       BIGINT NOT NULL,
//     discount_percent INT NOT NULL,
//     is_urgent        BOOLEAN DEFAULT FALSE,
//     starts_at        TIMESTAMPTZ DEFAULT NOW(),
//     ends_at          TIMESTAMPTZ
// );

type ProductPromotion struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement"`
	ProductID       uint64     `gorm:"column:product_id;not null"`
	DiscountPercent int        `gorm:"column:discount_percent;not null"`
	IsUrgent        bool       `gorm:"column:is_urgent;default:false"`
	StartsAt        time.Time  `gorm:"column:starts_at"`
	EndsAt          *time.Time `gorm:"column:ends_at"`
}

func (ProductPromotion) TableName() string {
	return "promotions"
}

func (p ProductPromotion) ToPromotion() Promotion {
	promo := Promotion{
		ItemID:          strconv.FormatUint(p.ProductID, 10),
		DiscountPercent: p.DiscountPercent,
		Urgent:          p.IsUrgent,
	}
	if p.EndsAt != nil {
		ends := p.EndsAt.UnixMilli()
		promo.EndsAt = &ends
	}
	return promo
}
