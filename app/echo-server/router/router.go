package router

import (
	"marketReco/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.DebugRecommend, adminOnly)

	users := api.Group("/users", authRequired)
	users.GET("/me/behavior", handler.Behavior)
}

func SetSystemRoutes(e *echo.Echo, health *rest.HealthHandler) {
	e.GET("/healthz", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
