package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CoursesProcessed      *prometheus.CounterVec
	TurningPointsResolved prometheus.Counter
	AnnotationErrors      prometheus.Counter
	ExtractionSeconds     prometheus.Histogram
	AnnotationSeconds     *prometheus.HistogramVec
	ActiveWorkers         prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CoursesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "courser_courses_processed_total",
			Help: "Total number of processed course extractions.",
		}, []string{"status"}),
		TurningPointsResolved: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "courser_turning_points_resolved_total",
			Help: "Total number of turning points resolved across all courses.",
		}),
		AnnotationErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "courser_annotation_api_errors_total",
			Help: "Total number of errors received from the locality provider API.",
		}),
		ExtractionSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "courser_extraction_duration_seconds",
			Help:    "Duration of turning-point extraction per course.",
			Buckets: prometheus.DefBuckets,
		}),
		AnnotationSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "courser_annotation_request_duration_seconds",
			Help:    "Duration of requests to the locality provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "courser_active_workers",
			Help: "Current number of active workers processing courses.",
		}),
	}
}
