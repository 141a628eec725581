package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/threebody/internal/scene"
)

// Collector exports frame statistics to prometheus.
type Collector struct {
	frameDuration prometheus.Histogram
	framesTotal   prometheus.Counter
	tracesTotal   *prometheus.CounterVec
	stepsTotal    prometheus.Counter
	streamClients prometheus.Gauge
	bytesSent     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewCollector registers the metrics with reg. A nil reg uses a fresh
// registry, so several collectors can live in one process.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "threebody_frame_duration_seconds",
				Help:    "Time spent tracing and rendering one frame",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
		framesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "threebody_frames_total",
				Help: "Total number of frames rendered",
			},
		),
		tracesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threebody_traces_total",
				Help: "Traced curves by kind and stop reason",
			},
			[]string{"kind", "stop"},
		),
		stepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "threebody_integration_steps_total",
				Help: "Total Euler steps taken by all traces",
			},
		),
		streamClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "threebody_stream_clients",
				Help: "Connected frame stream clients",
			},
		),
		bytesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threebody_bytes_sent_total",
				Help: "Encoded bytes sent by endpoint",
			},
			[]string{"endpoint"},
		),
		gatherer: reg,
	}

	reg.MustRegister(c.frameDuration)
	reg.MustRegister(c.framesTotal)
	reg.MustRegister(c.tracesTotal)
	reg.MustRegister(c.stepsTotal)
	reg.MustRegister(c.streamClients)
	reg.MustRegister(c.bytesSent)

	return c
}

func (c *Collector) RecordFrame(f *scene.Frame, d time.Duration) {
	c.frameDuration.Observe(d.Seconds())
	c.framesTotal.Inc()
	c.stepsTotal.Add(float64(f.Stats.Iterations))
	for stop, n := range f.Stats.StreamStops {
		c.tracesTotal.WithLabelValues("streamline", stop.String()).Add(float64(n))
	}
	for stop, n := range f.Stats.ContourStops {
		c.tracesTotal.WithLabelValues("contour", stop.String()).Add(float64(n))
	}
}

func (c *Collector) ClientConnected()    { c.streamClients.Inc() }
func (c *Collector) ClientDisconnected() { c.streamClients.Dec() }

func (c *Collector) TrackBytes(endpoint string, n int) {
	if n > 0 {
		c.bytesSent.WithLabelValues(endpoint).Add(float64(n))
	}
}

// Handler serves the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
