package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"marketReco/business/recommendation"
	"marketReco/domain"
	"marketReco/pkg/logger"
	"marketReco/pkg/metrics"
)

type (
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		timeout  time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userID uint, location *domain.UserLocation) ([]domain.RecommendedItem, error)
		AnalyzeUser(ctx context.Context, userID uint) (domain.UserBehaviorPattern, error)
		RefreshUserBehavior(ctx context.Context, userID uint) (domain.UserBehaviorPattern, error)
	}

	// LocationQuery is the optional ?lat=&lon= override.
	LocationQuery struct {
		Latitude  float64 `validate:"gte=-90,lte=90"`
		Longitude float64 `validate:"gte=-180,lte=180"`
	}

	DebugRecommendation struct {
		ItemID  string              `json:"item_id"`
		Score   float64             `json:"score"`
		Reasons []string            `json:"reasons"`
		Factors domain.FactorScores `json:"factors"`
	}
)

const defaultHandlerTimeout = 3 * time.Second

func NewRecommendationHandler(svc RecommendationService, timeout time.Duration) *RecommendationHandler {
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	return &RecommendationHandler{
		validate: validator.New(),
		service:  svc,
		timeout:  timeout,
	}
}

// GET /api/v1/recommendations?lat=-23.55&lon=-46.63
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()
	code := http.StatusOK
	defer func() { observe("recommend", code, start) }()

	items, status, err := h.recommend(c)
	if err != nil {
		code = status
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

// GET /api/v1/recommendations/debug
func (h *RecommendationHandler) DebugRecommend(c echo.Context) error {
	start := time.Now()
	code := http.StatusOK
	defer func() { observe("recommend_debug", code, start) }()

	items, status, err := h.recommend(c)
	if err != nil {
		code = status
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	out := make([]DebugRecommendation, 0, len(items))
	for _, it := range items {
		out = append(out, DebugRecommendation{
			ItemID:  it.Item.ID,
			Score:   it.Score,
			Reasons: it.Reasons,
			Factors: it.Factors,
		})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(out))
}

// GET /api/v1/users/me/behavior
func (h *RecommendationHandler) Behavior(c echo.Context) error {
	start := time.Now()
	code := http.StatusOK
	defer func() { observe("behavior", code, start) }()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		code = http.StatusUnauthorized
		return c.JSON(code, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	analyze := h.service.AnalyzeUser
	if refresh, _ := strconv.ParseBool(c.QueryParam("refresh")); refresh {
		analyze = h.service.RefreshUserBehavior
	}

	pattern, err := analyze(ctx, userID)
	if err != nil {
		code = statusFor(err)
		logger.Error("analyze user failed", "trace_id", recommendation.TraceIDFromContext(ctx), "user_id", userID, "error", err)
		return c.JSON(code, ResponseError{Message: messageFor(code, err)})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pattern))
}

func (h *RecommendationHandler) recommend(c echo.Context) ([]domain.RecommendedItem, int, error) {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return nil, http.StatusUnauthorized, errors.New("unauthorized")
	}

	location, err := h.parseLocation(c)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.service.Recommend(ctx, userID, location)
	if err != nil {
		status := statusFor(err)
		logger.Error("recommend failed", "trace_id", recommendation.TraceIDFromContext(ctx), "user_id", userID, "error", err)
		return nil, status, errors.New(messageFor(status, err))
	}

	return items, http.StatusOK, nil
}

// parseLocation reads lat/lon. Both or neither must be given.
func (h *RecommendationHandler) parseLocation(c echo.Context) (*domain.UserLocation, error) {
	latRaw, lonRaw := c.QueryParam("lat"), c.QueryParam("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, errors.New("lat and lon must be given together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, errors.New("invalid lon")
	}

	q := LocationQuery{Latitude: lat, Longitude: lon}
	if err := h.validate.Struct(&q); err != nil {
		return nil, err
	}

	return &domain.UserLocation{Latitude: q.Latitude, Longitude: q.Longitude}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, recommendation.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internal errors from clients.
func messageFor(status int, err error) string {
	if status == http.StatusUnprocessableEntity {
		return err.Error()
	}
	return http.StatusText(status)
}

func observe(endpoint string, code int, start time.Time) {
	metrics.HandlerLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.HandlerRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}
