package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-ddd-registration/internal/interface/middleware"
)

// MetricsModule exposes Prometheus metrics on GET /api/metrics, reachable from private networks only.
type MetricsModule struct {
	Gatherer prometheus.Gatherer
}

func NewMetricsModule(g prometheus.Gatherer) *MetricsModule {
	return &MetricsModule{Gatherer: g}
}

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	h := promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})
	rg.GET("/metrics", middleware.PrivateOnly(), gin.WrapH(h))
}
