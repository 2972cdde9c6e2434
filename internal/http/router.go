// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breadrun/internal/http/handlers"
	"breadrun/internal/http/middleware"
	"breadrun/internal/logger"
)

func NewRouter(
	log *logger.Logger,
	adminKey string,
	delivery *handlers.DeliveryHandler,
	admin *handlers.AdminHandler,
	usage *handlers.UsageHandler,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(log), middleware.Recovery(log))

	r.POST("/api/delivery/calculate", delivery.Calculate)

	adm := r.Group("/api/admin", middleware.AdminKey(adminKey))
	adm.GET("/delivery-charges", admin.ListRules)
	adm.POST("/delivery-charges", admin.CreateRule)
	adm.PUT("/delivery-charges/:id", admin.UpdateRule)
	adm.DELETE("/delivery-charges/:id", admin.DeleteRule)
	adm.POST("/distance-cache/cleanup", admin.CleanupDistanceCache)
	adm.GET("/api-usage/daily", usage.Daily)
	adm.GET("/api-usage/monthly", usage.Monthly)
	adm.GET("/api-usage/trend", usage.Trend)
	adm.GET("/api-usage/projected-cost", usage.ProjectedCost)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
