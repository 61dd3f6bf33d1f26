package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the HTTP surface and the
// window-building workload, and provides helpers to wire them into the
// gin router.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	ActivitiesProcessed prometheus.Counter
	WindowsBuilt        prometheus.Counter
}

// NewCollector registers the service metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mas_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by method, route, and status code.",
	}, []string{"method", "route", "status"})
	requests, err := registerCounterVec(reg, requests, "mas_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mas_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"method", "route"})
	durations, err = registerHistogramVec(reg, durations, "mas_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	activities, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mas_activities_processed_total",
		Help: "Total number of imaging activities accepted by either window builder.",
	}), "mas_activities_processed_total")
	if err != nil {
		return nil, err
	}
	windows, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mas_windows_built_total",
		Help: "Total number of streaming windows produced.",
	}), "mas_windows_built_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:            gatherer,
		HTTPRequests:        requests,
		HTTPDurations:       durations,
		ActivitiesProcessed: activities,
		WindowsBuilt:        windows,
	}, nil
}

// Middleware records request counts and durations for every routed request.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		if c == nil {
			return
		}

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		status := strconv.Itoa(ctx.Writer.Status())

		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(method, route, status).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		}
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// AddWindowUsage satisfies the service layer's UsageRecorder interface so
// the usage tracker can drive the workload counters directly.
func (c *Collector) AddWindowUsage(activities, windows int) {
	if c == nil {
		return
	}
	if c.ActivitiesProcessed != nil {
		c.ActivitiesProcessed.Add(float64(activities))
	}
	if c.WindowsBuilt != nil {
		c.WindowsBuilt.Add(float64(windows))
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
