package domain

import (
	"strconv"
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name    TEXT,
//     product_category TEXT,
//     brand           TEXT,
//     normal_price    NUMERIC,
//     sale_price      NUMERIC,
//     quantity        NUMERIC,
//     latitude        DOUBLE PRECISION,
//     longitude       DOUBLE PRECISION,
//     rating_average  NUMERIC DEFAULT 0,
//     rating_count    INT DEFAULT 0,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	ProductName     string    `gorm:"column:product_name;type:text"`
	ProductCategory string    `gorm:"column:product_category;type:text"`
	Brand           *string   `gorm:"column:brand;type:text"`
	NormalPrice     float64   `gorm:"column:normal_price;type:numeric"`
	SalePrice       float64   `gorm:"column:sale_price;type:numeric"`
	Quantity        float64   `gorm:"column:quantity;type:numeric"`
	Latitude        *float64  `gorm:"column:latitude"`
	Longitude       *float64  `gorm:"column:longitude"`
	RatingAverage   float64   `gorm:"column:rating_average;type:numeric;default:0"`
	RatingCount     int       `gorm:"column:rating_count;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the sale price when one is set, else the normal price.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.NormalPrice
}

// ToCandidate maps a catalog row onto the engine's candidate shape.
func (p Product) ToCandidate() Candidate {
	c := Candidate{
		ID:    strconv.FormatUint(p.ID, 10),
		Price: p.EffectivePrice(),
		Brand: p.Brand,
	}
	if p.ProductCategory != "" {
		category := p.ProductCategory
		c.Category = &category
	}
	if p.Latitude != nil && p.Longitude != nil {
		c.Location = &GeoPoint{Latitude: *p.Latitude, Longitude: *p.Longitude}
	}
	if p.RatingCount > 0 {
		c.Rating = &RatingSummary{Average: p.RatingAverage, Count: p.RatingCount}
	}
	return c
}
