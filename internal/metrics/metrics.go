// Package metrics provides Prometheus metrics for feed ingestion.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "newsagg"

// Collector holds the ingestion metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
	articles prometheus.Counter
	batches  prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "feed_fetches_total",
				Help:      "Total number of feed fetches by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "feed_fetch_duration_seconds",
				Help:      "Duration of a single feed fetch and parse in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		articles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "articles_ingested_total",
				Help:      "Total number of articles produced by ingestion",
			},
		),
		batches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_sources",
				Help:      "Distribution of feed sources per ingestion batch",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),
	}
	reg.MustRegister(c.fetches, c.duration, c.articles, c.batches)
	return c
}

// ObserveFetch records one source fetch.
func (c *Collector) ObserveFetch(d time.Duration, err error) {
	if c == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	c.fetches.WithLabelValues(result).Inc()
	c.duration.Observe(d.Seconds())
}

// ObserveBatch records one ingestion batch.
func (c *Collector) ObserveBatch(sources, articles int) {
	if c == nil {
		return
	}
	c.batches.Observe(float64(sources))
	c.articles.Add(float64(articles))
}
