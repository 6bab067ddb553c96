package secrets

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type readerMetrics struct {
	requests  *prometheus.CounterVec
	cacheHits prometheus.Counter
}

// newReaderMetrics creates the Reader collectors and registers them with reg.
// Collectors already registered by another Reader on the same registry are
// shared. A nil reg leaves the collectors unregistered.
func newReaderMetrics(reg prometheus.Registerer) *readerMetrics {
	m := &readerMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "secretreader_backend_requests_total",
			Help: "The total number of GetSecretValue calls made to Secrets Manager",
		}, []string{"outcome"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "secretreader_cache_hits_total",
			Help: "The total number of secret reads served from the cached entry",
		}),
	}

	if reg == nil {
		return m
	}

	m.requests = register(reg, m.requests)
	m.cacheHits = register(reg, m.cacheHits)

	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}
