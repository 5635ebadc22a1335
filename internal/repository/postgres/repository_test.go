package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/datatypes"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return gdb, mock
}

func TestProductRepository_FindRecommendable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	rows := sqlmock.NewRows([]string{"id", "product_name", "product_category", "brand", "normal_price", "sale_price", "quantity", "latitude", "longitude", "rating_average", "rating_count"}).
		AddRow(1, "Hammer", "tools", "Acme", 120.0, 99.0, 4.0, -23.55, -46.63, 4.5, 12).
		AddRow(2, "Seeds", "garden", nil, 5.0, 0.0, 40.0, nil, nil, 0.0, 0)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE quantity > .+ ORDER BY id LIMIT`).WillReturnRows(rows)

	products, err := repo.FindRecommendable(context.Background(), 100)
	if err != nil {
		t.Fatalf("FindRecommendable: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	c := products[0].ToCandidate()
	if c.ID != "1" || c.Price != 99 || c.Brand == nil || *c.Brand != "Acme" || c.Location == nil || c.Rating == nil {
		t.Fatalf("unexpected candidate %+v", c)
	}
	if c2 := products[1].ToCandidate(); c2.Location != nil || c2.Rating != nil || c2.Brand != nil {
		t.Fatalf("optional fields should stay nil, got %+v", c2)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestProductRepository_FindRecommendable_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM "products"`).WillReturnError(boom)

	if _, err := repo.FindRecommendable(context.Background(), 10); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestProductRepository_CanceledContext(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewProductRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.FindRecommendable(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPurchaseRepository_FindByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseRepository(db)

	bought := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"product_id", "product_category", "brand", "price_each", "rating", "created_at"}).
		AddRow(7, "tools", "Acme", 100.0, 4.0, bought).
		AddRow(8, "garden", nil, 12.5, nil, bought.Add(time.Hour))
	mock.ExpectQuery(`FROM orders o JOIN products p ON p.id = o.product_id WHERE o.user_id`).WillReturnRows(rows)

	purchases, err := repo.FindByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(purchases))
	}
	p := purchases[0]
	if p.ItemID != "7" || p.Category != "tools" || p.Price != 100 || p.Timestamp != bought.UnixMilli() {
		t.Fatalf("unexpected purchase %+v", p)
	}
	if p.Rating == nil || *p.Rating != 4 || p.Brand == nil {
		t.Fatalf("expected rating and brand, got %+v", p)
	}
	if purchases[1].Rating != nil || purchases[1].Brand != nil {
		t.Fatalf("null columns should map to nil, got %+v", purchases[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReviewRepository_FindByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	at := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "product_id", "rating", "comment", "created_at"}).
		AddRow(1, 42, 7, 5.0, "great", at)
	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE user_id = .+ ORDER BY created_at`).WillReturnRows(rows)

	reviews, err := repo.FindByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(reviews) != 1 || reviews[0].ItemID != "7" || reviews[0].Rating != 5 || reviews[0].Timestamp != at.UnixMilli() {
		t.Fatalf("unexpected reviews %+v", reviews)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPromotionRepository_FindActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromotionRepository(db)

	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	ends := now.Add(48 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "product_id", "discount_percent", "is_urgent", "starts_at", "ends_at"}).
		AddRow(1, 7, 30, true, now.Add(-time.Hour), ends).
		AddRow(2, 8, 10, false, now.Add(-time.Hour), nil)
	mock.ExpectQuery(`FROM "promotions" WHERE starts_at <= .+ AND \(ends_at IS NULL OR ends_at >= .+\)`).WillReturnRows(rows)

	promos, err := repo.FindActive(context.Background(), now)
	if err != nil {
		t.Fatalf("FindActive: %v", err)
	}
	if len(promos) != 2 {
		t.Fatalf("expected 2 promotions, got %d", len(promos))
	}
	if promos[0].ItemID != "7" || !promos[0].Urgent || promos[0].EndsAt == nil || *promos[0].EndsAt != ends.UnixMilli() {
		t.Fatalf("unexpected promotion %+v", promos[0])
	}
	if promos[1].EndsAt != nil {
		t.Fatalf("open-ended promotion should have nil EndsAt")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserProfileRepository_GetProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserProfileRepository(db)

	rows := sqlmock.NewRows([]string{"latitude", "longitude", "category_preferences"}).
		AddRow(-6.2, 106.8, []byte(`{"tools":0.8,"garden":0.1,"note":"vip"}`))
	mock.ExpectQuery(`SELECT latitude, longitude, category_preferences FROM "users" WHERE id = .+ AND "users"\."deleted_at" IS NULL`).WillReturnRows(rows)

	profile, err := repo.GetProfile(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Location == nil || profile.Location.Latitude != -6.2 || profile.Location.Longitude != 106.8 {
		t.Fatalf("unexpected location %+v", profile.Location)
	}
	if len(profile.CategoryWeights) != 2 || profile.CategoryWeights["tools"] != 0.8 {
		t.Fatalf("expected numeric weights only, got %v", profile.CategoryWeights)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCategoryWeights_NumberKinds(t *testing.T) {
	var scanned datatypes.JSONMap
	if err := scanned.Scan([]byte(`{"tools":0.8,"garden":1}`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	got := categoryWeights(42, scanned)
	if got["tools"] != 0.8 || got["garden"] != 1 {
		t.Fatalf("scanned numbers should be kept, got %v", got)
	}

	built := datatypes.JSONMap{"tools": 0.4, "bad": json.Number("x"), "note": true}
	got = categoryWeights(42, built)
	if len(got) != 1 || got["tools"] != 0.4 {
		t.Fatalf("expected only the float entry, got %v", got)
	}
}

func TestUserProfileRepository_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserProfileRepository(db)

	mock.ExpectQuery(`FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"latitude", "longitude", "category_preferences"}))

	profile, err := repo.GetProfile(context.Background(), 404)
	if err != nil {
		t.Fatalf("unknown user should not be an error: %v", err)
	}
	if profile.Location != nil || profile.CategoryWeights != nil {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestUserProfileRepository_NullLocation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserProfileRepository(db)

	rows := sqlmock.NewRows([]string{"latitude", "longitude", "category_preferences"}).
		AddRow(nil, nil, nil)
	mock.ExpectQuery(`FROM "users"`).WillReturnRows(rows)

	profile, err := repo.GetProfile(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Location != nil {
		t.Fatalf("null coordinates should leave location unset, got %+v", profile.Location)
	}
}

func TestSearchHistoryRepository_FindRecentQueries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSearchHistoryRepository(db)

	rows := sqlmock.NewRows([]string{"query"}).
		AddRow("cordless drill").
		AddRow("drill bits")
	mock.ExpectQuery(`FROM "search_history" WHERE user_id = .+ ORDER BY created_at DESC LIMIT`).WillReturnRows(rows)

	queries, err := repo.FindRecentQueries(context.Background(), 42, 50)
	if err != nil {
		t.Fatalf("FindRecentQueries: %v", err)
	}
	if len(queries) != 2 || queries[0] != "cordless drill" {
		t.Fatalf("unexpected queries %v", queries)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
