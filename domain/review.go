package domain

import (
	"strconv"
	"time"
)

type Review struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Rating    float64   `gorm:"column:rating;not null" json:"rating"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r Review) ToUserReview() UserReview {
	return UserReview{
		ItemID:    strconv.FormatUint(r.ProductID, 10),
		Rating:    r.Rating,
		Timestamp: r.CreatedAt.UnixMilli(),
	}
}
