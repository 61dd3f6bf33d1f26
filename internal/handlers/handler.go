package handlers

import (
	"mission_awareness/internal/logger"
	"mission_awareness/internal/observability"
	"mission_awareness/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, logging, and metrics.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *observability.Collector
}

// NewHandler constructs a new HTTP handler with dependencies.
// metrics may be nil; the /metrics route is then not registered.
func NewHandler(services *service.Service, log *logger.Logger, metrics *observability.Collector) *Handler {
	return &Handler{services: services, log: log, metrics: metrics}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Imaging-window endpoints
	h.registerWindowRoutes(router)

	// Per-message window building over a WebSocket upgrade on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerWindowRoutes(r *gin.Engine) {
	windows := r.Group("/imaging-windows")
	{
		// Body example: {"activities":[{"satellite_hw_id":"SKY-001","start_time":"2024-07-12T00:34:05Z","end_time":"2024-07-12T00:34:08Z","activity_state":"scheduled"}]}
		windows.POST("/chronological", h.buildChronological)
		windows.POST("/streaming", h.buildStreaming)
		windows.GET("/stats", h.getStats)
	}
}
