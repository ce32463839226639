package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMiddleware собирает HTTP-метрики preview API. Меши чанков —
// самые тяжелые ответы сервера, поэтому помимо длительности снимается
// и размер тела ответа.
//
// Метрики (namespace = имя сервиса):
// * http_request_duration_seconds{method,path,status} — histogram
// * http_response_bytes{method,path} — histogram
// * http_requests_inflight — gauge
// * http_request_errors_total{method,path,status} — counter (4xx/5xx)
type PrometheusMiddleware struct {
	duration *prometheus.HistogramVec
	respSize *prometheus.HistogramVec
	inflight prometheus.Gauge
	errors   *prometheus.CounterVec
}

// NewPrometheusMiddleware создает middleware и регистрирует метрики в
// дефолтном регистре. Повторный вызов с тем же именем сервиса паникует.
func NewPrometheusMiddleware(service string) *PrometheusMiddleware {
	pm := &PrometheusMiddleware{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
		respSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_response_bytes",
			Help:      "Размер тела HTTP-ответа.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"method", "path"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: service,
			Name:      "http_requests_inflight",
			Help:      "Текущее количество обрабатываемых HTTP-запросов.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_request_errors_total",
			Help:      "Число запросов, завершившихся ошибкой (4xx/5xx).",
		}, []string{"method", "path", "status"}),
	}

	prometheus.MustRegister(pm.duration, pm.respSize, pm.inflight, pm.errors)
	return pm
}

// Handler возвращает gin.HandlerFunc для router.Use()
func (pm *PrometheusMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		pm.inflight.Inc()
		c.Next()
		pm.inflight.Dec()

		method := c.Request.Method
		path := routePath(c)
		status := c.Writer.Status()
		statusLabel := strconv.Itoa(status)

		pm.duration.WithLabelValues(method, path, statusLabel).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			pm.respSize.WithLabelValues(method, path).Observe(float64(size))
		}
		if status >= 400 {
			pm.errors.WithLabelValues(method, path, statusLabel).Inc()
		}
	}
}

// routePath возвращает шаблон маршрута, чтобы /api/cells/3/7 не плодил
// отдельную метку на каждую координату; для не-матченных маршрутов —
// сырой путь
func routePath(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return c.Request.URL.Path
}

// RegisterMetricsEndpoint добавляет GET /metrics в указанный router
func (pm *PrometheusMiddleware) RegisterMetricsEndpoint(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
