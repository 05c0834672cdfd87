package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/johnnygoblue/orderbook/benchmark"
	"github.com/johnnygoblue/orderbook/log"
	"github.com/johnnygoblue/orderbook/orderbook"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "obbench"

var errEmptyPath = errors.New("metrics textfile path is empty")

// Recorder collects benchmark samples as Prometheus metrics on its own
// registry. It satisfies benchmark.Observer.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.HistogramVec
	runs       *prometheus.CounterVec
}

// NewRecorder returns a Recorder with every collector registered
func NewRecorder() (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_seconds",
			Help:      "Duration of a timed order book batch, or of a single best price call",
			Buckets:   prometheus.ExponentialBuckets(1e-9, 10, 12),
		}, []string{"strategy", "operation"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Measured benchmark runs completed per strategy",
		}, []string{"strategy"}),
	}
	for _, c := range []prometheus.Collector{r.operations, r.runs} {
		if err := r.registry.Register(c); err != nil {
			return nil, err
		}
	}
	log.Debugf(log.Metrics, "prometheus collectors registered")
	return r, nil
}

// Observe implements benchmark.Observer
func (r *Recorder) Observe(s orderbook.Strategy, op benchmark.Operation, d time.Duration) {
	r.operations.WithLabelValues(s.String(), string(op)).Observe(d.Seconds())
}

// RunComplete implements benchmark.Observer
func (r *Recorder) RunComplete(s orderbook.Strategy) {
	r.runs.WithLabelValues(s.String()).Inc()
}

// Gatherer exposes the registry for callers that serve or inspect it
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the registry in the text exposition format for the
// node exporter textfile collector, creating parent directories
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return errEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o770); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return err
	}
	log.Infof(log.Metrics, "metrics written to %s", path)
	return nil
}
