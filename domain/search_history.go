package domain

import "time"

type SearchHistory struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null"`
	Query     string    `gorm:"column:query;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SearchHistory) TableName() string {
	return "search_history"
}
