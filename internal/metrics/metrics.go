package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spotify_yt_downloader"

// Recorder collects per-run download metrics in its own registry so a run can
// be exported as a node_exporter textfile.
type Recorder struct {
	registry  *prometheus.Registry
	downloads *prometheus.CounterVec
	duration  prometheus.Histogram
	queued    prometheus.Gauge
	lastRun   prometheus.Gauge
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Processed tracks by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_duration_seconds",
			Help:      "Time spent searching and downloading one track.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queued_tracks",
			Help:      "Tracks queued by the last run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
	r.registry.MustRegister(r.downloads, r.duration, r.queued, r.lastRun)
	// Both series are exported even when a run has no failures.
	r.downloads.WithLabelValues("success")
	r.downloads.WithLabelValues("failure")
	return r
}

// ObserveResult records one processed track.
func (r *Recorder) ObserveResult(ok bool, elapsed time.Duration) {
	result := "failure"
	if ok {
		result = "success"
	}
	r.downloads.WithLabelValues(result).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// SetQueued records how many tracks were queued.
func (r *Recorder) SetQueued(n int) {
	r.queued.Set(float64(n))
}

// WriteTextfile stamps the finish time and writes every metric to path in
// the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	r.lastRun.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
