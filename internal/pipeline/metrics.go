package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-image outcomes of the pipeline. A nil *Metrics is a no-op.
type Metrics struct {
	processed *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewMetrics registers the pipeline collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		processed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listing_images_processed_total",
				Help: "Listing image uploads processed, by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "listing_image_transform_seconds",
			Help:    "Time spent transforming one listing image.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
	}
	for _, c := range []prometheus.Collector{m.processed, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(d time.Duration, ok bool) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
	outcome := "ok"
	if !ok {
		outcome = "dropped"
	}
	m.processed.WithLabelValues(outcome).Inc()
}
