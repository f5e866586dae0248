package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Metrics holds the prometheus instruments for catalogue builds. Create
// one per process and share it across builders.
type Metrics struct {
	registry *prometheus.Registry

	cataloguesBuilt prometheus.Counter
	pathsPublished  *prometheus.CounterVec
	knowledgeHits   prometheus.Counter
	depthLimitHits  prometheus.Counter
	buildDuration   prometheus.Histogram
}

// NewMetrics creates and registers the instrument set on a private
// registry, keeping tests and embedding applications free of global
// registration collisions.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cataloguesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracery_catalogues_built_total",
			Help: "Total number of catalogue builds completed",
		}),
		pathsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracery_paths_published_total",
				Help: "Total number of mutation paths published",
			},
			[]string{"status"},
		),
		knowledgeHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracery_knowledge_hits_total",
			Help: "Total number of curated knowledge short-circuits",
		}),
		depthLimitHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracery_depth_limit_hits_total",
			Help: "Total number of branches truncated by the recursion bound",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracery_build_duration_seconds",
			Help:    "Duration of catalogue builds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.cataloguesBuilt,
		m.pathsPublished,
		m.knowledgeHits,
		m.depthLimitHits,
		m.buildDuration,
	)

	return m
}

// BuildHooks returns traversal hooks that feed these instruments.
func (m *Metrics) BuildHooks() domain.BuildHooks {
	return domain.BuildHooks{
		OnPathBuilt: func(path string, status domain.MutationStatus) {
			m.pathsPublished.WithLabelValues(string(status)).Inc()
		},
		OnKnowledgeHit: func(t schema.TypeID) {
			m.knowledgeHits.Inc()
		},
		OnDepthLimit: func(t schema.TypeID, depth int) {
			m.depthLimitHits.Inc()
		},
	}
}

// ObserveBuild records one completed build.
func (m *Metrics) ObserveBuild(d time.Duration) {
	m.cataloguesBuilt.Inc()
	m.buildDuration.Observe(d.Seconds())
}

// Handler exposes the instrument set as a scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for test assertions.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
