package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID                  uint              `gorm:"primaryKey"`
	FullName            string            `gorm:"column:full_name;not null"`
	Email               string            `gorm:"column:email;unique;not null"`
	Role                string            `gorm:"column:role;default:customer"`
	Latitude            *float64          `gorm:"column:latitude"`
	Longitude           *float64          `gorm:"column:longitude"`
	CategoryPreferences datatypes.JSONMap `gorm:"column:category_preferences;type:jsonb"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
