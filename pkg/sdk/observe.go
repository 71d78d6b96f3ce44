package careercompass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/careercompass/internal/domain"
)

// Operation names, used as the "operation" label and the "op" log attribute.
const (
	opLoad    = "load"
	opGet     = "get"
	opSearch  = "search"
	opPredict = "predict"
)

// clientMetrics are the optional prometheus collectors of a Client.
type clientMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
	records prometheus.Gauge
	results prometheus.Histogram
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	calls, err := registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careercompass",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "Client calls by operation and outcome (ok, not_found, invalid, error).",
	}, []string{"operation", "status"}))
	if err != nil {
		return nil, err
	}
	latency, err := registerCollector(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "careercompass",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "Client call duration in seconds.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}
	records, err := registerCollector(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "careercompass",
		Subsystem: "sdk",
		Name:      "dataset_records",
		Help:      "Careers held by the most recently loaded client.",
	}))
	if err != nil {
		return nil, err
	}
	results, err := registerCollector(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "careercompass",
		Subsystem: "sdk",
		Name:      "search_results",
		Help:      "Careers returned per Search call.",
		Buckets:   []float64{0, 1, 5, 10, 50, 100, 500},
	}))
	if err != nil {
		return nil, err
	}
	return &clientMetrics{calls: calls, latency: latency, records: records, results: results}, nil
}

// registerCollector registers c, or returns the collector already registered
// under the same descriptor so clients sharing a registry share series.
func registerCollector[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("careercompass: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("careercompass: metric registered with a different type: %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer logs and counts client calls. Both sinks are optional.
type observer struct {
	logger  *slog.Logger
	metrics *clientMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// status classifies err for the "status" label. Caller mistakes are kept
// apart from failures of the dataset source or the embedding provider.
func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrInvalidSchema),
		errors.Is(err, domain.ErrPredictorDisabled):
		return "invalid"
	default:
		return "error"
	}
}

// observe records one call. attrs are appended to the log line.
func (o *observer) observe(op string, start time.Time, err error, attrs ...slog.Attr) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	st := status(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, st).Inc()
		o.metrics.latency.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("op", op), slog.Duration("duration", dur), slog.String("status", st))
	level := slog.LevelDebug
	switch st {
	case "error":
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("error", err))
	case "not_found", "invalid":
		attrs = append(attrs, slog.String("reason", err.Error()))
	}
	o.logger.LogAttrs(context.Background(), level, "careercompass "+op, attrs...)
}

// loaded records a finished load with the dataset summary.
func (o *observer) loaded(start time.Time, source string, records, duplicates int, err error) {
	if o == nil {
		return
	}
	if err == nil && o.metrics != nil {
		o.metrics.records.Set(float64(records))
	}
	o.observe(opLoad, start, err,
		slog.String("source", source),
		slog.Int("records", records),
		slog.Int("duplicates_dropped", duplicates),
	)
}

// searched records a search call and the size of its result.
func (o *observer) searched(start time.Time, query string, results int, err error) {
	if o == nil {
		return
	}
	if err == nil && o.metrics != nil {
		o.metrics.results.Observe(float64(results))
	}
	o.observe(opSearch, start, err, slog.String("query", query), slog.Int("results", results))
}
