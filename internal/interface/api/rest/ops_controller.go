package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mds-registry-api/internal/interface/api/rest/dto"
)

type health struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RegisterOps wires health, metrics and the JSON 404 fallback.
func RegisterOps(r *gin.Engine) {
	r.GET(RouteHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, health{Message: "Server is running", Timestamp: time.Now().UTC()})
	})
	r.GET(RouteMetrics, gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Error{Error: "Route not found"})
	})
}
