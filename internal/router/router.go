package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gstcore/internal/handler"
	"gstcore/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware. gatherer
// backs /metrics; nil uses the default registry.
func Setup(
	log *zap.Logger,
	allowedOrigins []string,
	gatherer prometheus.Gatherer,
	totalsH *handler.TotalsHandler,
	numberH *handler.InvoiceNumberHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Tracing(nil))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")

	// Pricing
	v1.POST("/totals", totalsH.Compute)
	v1.POST("/totals/export", totalsH.Export)
	v1.GET("/words", totalsH.Words)

	// Invoice numbering
	numbers := v1.Group("/invoice-numbers")
	numbers.GET("", numberH.List)
	numbers.POST("", numberH.Issue)
	numbers.GET("/next", numberH.Next)
	numbers.GET("/check", numberH.Check)
	numbers.GET("/lookup", numberH.Lookup)

	return r
}
