package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	PageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "signaldash",
			Subsystem: "pages",
			Name:      "build_seconds",
			Help:      "Time to build page payloads",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"page"},
	)

	PageCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signaldash",
			Subsystem: "pages",
			Name:      "cache_hits_total",
			Help:      "Page payloads served from the response cache",
		},
		[]string{"page"},
	)

	PageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signaldash",
			Subsystem: "pages",
			Name:      "errors_total",
			Help:      "Errors by page",
		},
		[]string{"page"},
	)
)

func Register() {
	RegisterWith(prometheus.DefaultRegisterer)
}

// RegisterWith registers the page collectors once on reg.
func RegisterWith(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(PageLatency, PageCacheHits, PageErrors)
	})
}
