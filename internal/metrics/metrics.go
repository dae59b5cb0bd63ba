// Package metrics exposes the ledger's prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "btcwallet"

// Collector owns a private registry so tests and multiple servers in one
// process do not collide.
type Collector struct {
	registry *prometheus.Registry

	operationDuration *prometheus.HistogramVec
	errors            *prometheus.CounterVec
	walletsCreated    prometheus.Counter
	transfers         prometheus.Counter
	transferVolume    prometheus.Counter
	feesCollected     prometheus.Counter
	ledgerDrift       prometheus.Gauge
	dbConnections     *prometheus.GaugeVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Failed service operations by error code.",
		}, []string{"operation", "code"}),
		walletsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallets_created_total",
			Help:      "Wallets opened.",
		}),
		transfers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Completed transfers.",
		}),
		transferVolume: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_volume_satoshis_total",
			Help:      "Satoshis debited by completed transfers.",
		}),
		feesCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fees_collected_satoshis_total",
			Help:      "Satoshis retained as transfer fees.",
		}),
		ledgerDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_drift_satoshis",
			Help:      "Balances plus fees minus issued value at the last audit.",
		}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections",
			Help:      "Database pool connections by state.",
		}, []string{"state"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.operationDuration,
		c.errors,
		c.walletsCreated,
		c.transfers,
		c.transferVolume,
		c.feesCollected,
		c.ledgerDrift,
		c.dbConnections,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) RecordOperationDuration(operation string, d time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *Collector) RecordError(operation, code string) {
	c.errors.WithLabelValues(operation, code).Inc()
}

func (c *Collector) RecordWalletCreated() {
	c.walletsCreated.Inc()
}

func (c *Collector) RecordTransaction(amount, fee int64) {
	c.transfers.Inc()
	c.transferVolume.Add(float64(amount))
	c.feesCollected.Add(float64(fee))
}

func (c *Collector) SetLedgerDrift(drift int64) {
	c.ledgerDrift.Set(float64(drift))
}

func (c *Collector) SetDBConnections(open, inUse, idle int) {
	c.dbConnections.WithLabelValues("open").Set(float64(open))
	c.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	c.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
