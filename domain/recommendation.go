package domain

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// UserLocation is where the user currently is.
type UserLocation = GeoPoint

// RatingSummary is the aggregate rating of an item across all users.
type RatingSummary struct {
	Average float64 `json:"average" validate:"gte=0,lte=5"`
	Count   int     `json:"count" validate:"gte=0"`
}

// Candidate is a catalog item eligible for recommendation. Optional
// fields are nil when the signal does not apply to the item.
type Candidate struct {
	ID       string         `json:"id" validate:"required"`
	Price    float64        `json:"price" validate:"gte=0"`
	Location *GeoPoint      `json:"location,omitempty" validate:"omitempty"`
	Category *string        `json:"category,omitempty"`
	Brand    *string        `json:"brand,omitempty"`
	Rating   *RatingSummary `json:"rating,omitempty" validate:"omitempty"`
}

// UserPurchase is one historical transaction. Timestamp is epoch millis.
type UserPurchase struct {
	ItemID    string   `json:"item_id"`
	Category  string   `json:"category"`
	Price     float64  `json:"price" validate:"gte=0"`
	Brand     *string  `json:"brand,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Rating    *float64 `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// UserReview is a rating the user gave to an item. Timestamp is epoch millis.
type UserReview struct {
	ItemID    string  `json:"item_id"`
	Rating    float64 `json:"rating" validate:"gte=1,lte=5"`
	Timestamp int64   `json:"timestamp"`
}

// Promotion is a discount running on one item. EndsAt is epoch millis.
type Promotion struct {
	ItemID          string `json:"item_id"`
	DiscountPercent int    `json:"discount_percent" validate:"gte=0,lte=100"`
	Urgent          bool   `json:"urgent"`
	EndsAt          *int64 `json:"ends_at,omitempty"`
}

// PriceRange summarizes historical purchase prices. A nil Max means the
// user has no price preference yet.
type PriceRange struct {
	Min     float64  `json:"min"`
	Max     *float64 `json:"max"`
	Average float64  `json:"average"`
}

// HasPreference reports whether the range was derived from real purchases.
func (r PriceRange) HasPreference() bool {
	return r.Max != nil
}

// Contains reports whether price falls in the range. A range without a
// preference contains every price.
func (r PriceRange) Contains(price float64) bool {
	if !r.HasPreference() {
		return true
	}
	return price >= r.Min && price <= *r.Max
}

type UserBehaviorPattern struct {
	TopCategories       []string   `json:"top_categories"`
	PreferredPriceRange PriceRange `json:"preferred_price_range"`
	MostActiveHour      int        `json:"most_active_hour"`
	TopSearchTerms      []string   `json:"top_search_terms"`
	AverageRatingGiven  float64    `json:"average_rating_given"`
	TotalPurchases      int        `json:"total_purchases"`
	TotalReviews        int        `json:"total_reviews"`
}

// UserProfile holds the per-user signals stored on the account itself.
type UserProfile struct {
	Location        *UserLocation
	CategoryWeights map[string]float64
}

// UserContext is the immutable snapshot of per-user signals used for one
// scoring call. Now is the clock the decay calculations run against.
type UserContext struct {
	Purchases       []UserPurchase     `validate:"dive"`
	Reviews         []UserReview       `validate:"dive"`
	Location        *UserLocation      `validate:"omitempty"`
	Promotions      []Promotion        `validate:"dive"`
	CategoryWeights map[string]float64 `validate:"dive,gte=0,lte=1"`
	SearchHistory   []string
	Now             int64
}

// FactorScores is the per-signal breakdown behind a final score.
type FactorScores struct {
	PurchaseHistory  float64 `json:"purchase_history"`
	Reviews          float64 `json:"reviews"`
	Promotions       float64 `json:"promotions"`
	CategoryAffinity float64 `json:"category_affinity"`
	Location         float64 `json:"location"`
}

type RecommendedItem struct {
	Item    Candidate    `json:"item"`
	Score   float64      `json:"score"`
	Reasons []string     `json:"reasons"`
	Factors FactorScores `json:"-"`
}
