package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flight-intent-service/pkg/logger"
)

// NewRouter wires the handler and the metrics endpoint into a gin engine.
func NewRouter(h *Handler, gatherer prometheus.Gatherer, log logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	{
		v1.POST("/parse", h.Parse)
		v1.POST("/resolve", h.Resolve)
		v1.POST("/requests", h.CreateRequest)
		v1.GET("/requests", h.ListRequests)
		v1.GET("/requests/:id", h.GetRequest)
	}

	return r
}
