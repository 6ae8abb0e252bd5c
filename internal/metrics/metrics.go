package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imyashkale/kmsdash/internal/supervisor"
)

const namespace = "kmsdash"

// Collector owns every metric the dashboard exports. It registers against a
// private registry so tests can create collectors without colliding on the
// global default.
type Collector struct {
	registry *prometheus.Registry

	processState   *prometheus.GaugeVec
	processStarts  prometheus.Counter
	processCrashes prometheus.Counter

	catalogSize    prometheus.Gauge
	catalogBuilds  prometheus.Counter
	logReads       prometheus.Counter
	configUpdates  prometheus.Counter
	commandsLogged prometheus.Counter
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		processState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_state",
			Help:      "Current KMS server process state, one-hot per state label.",
		}, []string{"state"}),
		processStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "process_starts_total",
			Help:      "Number of times the KMS server process was started.",
		}),
		processCrashes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "process_crashes_total",
			Help:      "Number of times the KMS server process exited without being asked to.",
		}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Number of products in the most recently built catalog.",
		}),
		catalogBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_builds_total",
			Help:      "Number of product catalog builds.",
		}),
		logReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_reads_total",
			Help:      "Number of log tail reads served over the API.",
		}),
		configUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_updates_total",
			Help:      "Number of accepted server configuration updates.",
		}),
		commandsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_logged_total",
			Help:      "Number of activation commands recorded in the audit log.",
		}),
	}

	c.registry.MustRegister(
		c.processState,
		c.processStarts,
		c.processCrashes,
		c.catalogSize,
		c.catalogBuilds,
		c.logReads,
		c.configUpdates,
		c.commandsLogged,
	)

	return c
}

// ObserveProcessState records a supervisor state transition. The state gauge
// is kept one-hot so dashboards can plot the current state directly.
func (c *Collector) ObserveProcessState(st supervisor.State) {
	for _, known := range []supervisor.State{
		supervisor.StateNotStarted,
		supervisor.StateRunning,
		supervisor.StateStopped,
		supervisor.StateCrashed,
	} {
		value := 0.0
		if known == st {
			value = 1.0
		}
		c.processState.WithLabelValues(known.String()).Set(value)
	}

	switch st {
	case supervisor.StateRunning:
		c.processStarts.Inc()
	case supervisor.StateCrashed:
		c.processCrashes.Inc()
	}
}

// CatalogBuilt records a catalog build and its resulting size.
func (c *Collector) CatalogBuilt(size int) {
	c.catalogBuilds.Inc()
	c.catalogSize.Set(float64(size))
}

// LogsRead records a log tail read served over the API.
func (c *Collector) LogsRead() {
	c.logReads.Inc()
}

// ConfigUpdated records an accepted server configuration update.
func (c *Collector) ConfigUpdated() {
	c.configUpdates.Inc()
}

// CommandLogged records an activation command written to the audit log.
func (c *Collector) CommandLogged() {
	c.commandsLogged.Inc()
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
