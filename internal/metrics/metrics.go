package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Submissions     *prometheus.CounterVec
	UpstreamErrors  prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
	InFlight        prometheus.Gauge
	GeocodeRequests *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Submissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "valuation_submissions_total",
			Help: "Total number of processed valuation submissions.",
		}, []string{"status"}),
		UpstreamErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "valuation_upstream_api_errors_total",
			Help: "Total number of errors received from the valuation API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "valuation_upstream_request_duration_seconds",
			Help:    "Duration of requests to the valuation API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		InFlight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "valuation_inflight_submissions",
			Help: "Current number of submissions waiting on the valuation API.",
		}),
		GeocodeRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "valuation_geocode_requests_total",
			Help: "Total number of coordinate lookup requests.",
		}, []string{"status"}),
	}
}
