package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"marketReco/business/recommendation"
	"marketReco/domain"
	"marketReco/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProfileRepository reads location and category preferences from the
// "users" table.
type UserProfileRepository struct {
	DB *gorm.DB
}

var _ recommendation.UserProfileRepository = (*UserProfileRepository)(nil)

func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{DB: db}
}

func (r *UserProfileRepository) GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserProfile{}, fmt.Errorf("context error: %w", err)
	}

	var row struct {
		Latitude            sql.NullFloat64   `gorm:"column:latitude"`
		Longitude           sql.NullFloat64   `gorm:"column:longitude"`
		CategoryPreferences datatypes.JSONMap `gorm:"column:category_preferences"`
	}

	// Model brings in the soft-delete scope
	res := r.DB.WithContext(ctx).
		Model(&domain.User{}).
		Select("latitude, longitude, category_preferences").
		Where("id = ?", userID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to get user profile: %w", res.Error)
	}
	// unknown user: no profile signals, not an error
	if res.RowsAffected == 0 {
		return domain.UserProfile{}, nil
	}

	profile := domain.UserProfile{}
	if row.Latitude.Valid && row.Longitude.Valid {
		profile.Location = &domain.UserLocation{
			Latitude:  row.Latitude.Float64,
			Longitude: row.Longitude.Float64,
		}
	}
	profile.CategoryWeights = categoryWeights(userID, row.CategoryPreferences)

	return profile, nil
}

// categoryWeights keeps numeric entries only; anything else in the jsonb
// column is skipped with a warning.
func categoryWeights(userID uint, prefs datatypes.JSONMap) map[string]float64 {
	if len(prefs) == 0 {
		return nil
	}
	weights := make(map[string]float64, len(prefs))
	for category, v := range prefs {
		// JSONMap decodes with UseNumber, so stored numbers arrive as json.Number
		var (
			w   float64
			err error
		)
		switch n := v.(type) {
		case json.Number:
			w, err = n.Float64()
		case float64:
			w = n
		default:
			err = fmt.Errorf("unexpected type %T", v)
		}
		if err != nil {
			logger.Warn("non-numeric category preference", "user_id", userID, "category", category, "error", err)
			continue
		}
		weights[category] = w
	}
	return weights
}
