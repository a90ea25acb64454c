package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/compositectl/internal/composite"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compositectl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "compositectl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	decodeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compositectl",
			Subsystem: "decode",
			Name:      "total",
			Help:      "Composite decodes by kind and result.",
		},
		[]string{"kind", "result"},
	)
	decodeBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "compositectl",
			Subsystem: "decode",
			Name:      "input_bytes",
			Help:      "Size of decoded input buffers in bytes.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"kind"},
	)
	decodeComponents = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "compositectl",
			Subsystem: "decode",
			Name:      "components",
			Help:      "Components per successfully decoded column name.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, decodeTotal, decodeBytes, decodeComponents)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordDecode counts one decode. result is "ok" or a composite.ErrorKind
// label.
func RecordDecode(kind, result string, size, components int) {
	RegisterMetrics()
	decodeTotal.WithLabelValues(kind, result).Inc()
	decodeBytes.WithLabelValues(kind).Observe(float64(size))
	if result == "ok" {
		decodeComponents.WithLabelValues(kind).Observe(float64(components))
	}
}

// DecodeObserver feeds decoder activity into the decode metrics.
type DecodeObserver struct{}

var _ composite.Observer = DecodeObserver{}

func (DecodeObserver) ObserveDecode(kind composite.Kind, size, components int, err error) {
	result := "ok"
	if err != nil {
		result = composite.ErrorKind(err)
	}
	RecordDecode(string(kind), result, size, components)
}
