package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace for all topic directory metrics
const namespace = "topicdir"

// Lookup outcomes used as the "outcome" label of TopicLookups.
const (
	OutcomeFound     = "found"
	OutcomeSuggested = "suggested"
	OutcomeEmpty     = "empty"
)

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// AppInfo is a gauge that exposes application version information as labels
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// TopicsLoaded reports how many topics the directory was built with
var TopicsLoaded = promauto.With(Registry).NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "topics_loaded",
		Help:      "Number of topics held by the in-memory directory",
	},
)

// TopicLookups counts directory operations by operation and outcome
var TopicLookups = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "topic_lookups_total",
		Help:      "Total number of topic directory lookups",
	},
	[]string{"operation", "outcome"}, // operation: search|summarize|list, outcome: found|suggested|empty
)

// AuthFailures counts rejected credentials by reason
var AuthFailures = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by API key authentication",
	},
	[]string{"reason"}, // reason: missing|invalid
)

var initOnce sync.Once

// Init registers runtime collectors and sets version information.
// Safe to call more than once; only the first call has effect.
func Init(version, commit, buildDate string) {
	initOnce.Do(func() {
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		AppInfo.WithLabelValues(version, commit, buildDate).Set(1)
	})
}

// RecordLookup increments the lookup counter for an operation outcome.
func RecordLookup(operation, outcome string) {
	TopicLookups.WithLabelValues(operation, outcome).Inc()
}

// RecordAuthFailure increments the auth failure counter.
func RecordAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
