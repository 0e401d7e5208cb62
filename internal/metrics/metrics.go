// Package metrics exposes bench statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hoaproject/Bench/pkg/bench"
)

const namespace = "bench"

var (
	elapsedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "mark", "elapsed_seconds"),
		"Time accumulated by a mark.",
		[]string{"mark"}, nil,
	)
	percentDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "mark", "percent"),
		"Elapsed time of a mark relative to the longest mark.",
		[]string{"mark"}, nil,
	)
	marksDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "marks"),
		"Number of marks reported.",
		nil, nil,
	)
)

// Collector reads a fresh snapshot on every scrape
type Collector struct {
	stats        *bench.Statistics
	applyFilters bool
}

// NewCollector creates a collector over stats. With applyFilters the
// statistics filters select the exported marks.
func NewCollector(stats *bench.Statistics, applyFilters bool) *Collector {
	return &Collector{stats: stats, applyFilters: applyFilters}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- elapsedDesc
	ch <- percentDesc
	ch <- marksDesc
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.stats.Snapshot(c.applyFilters)
	for _, st := range snap {
		ch <- prometheus.MustNewConstMetric(elapsedDesc, prometheus.GaugeValue, st.Seconds(), st.ID)
		ch <- prometheus.MustNewConstMetric(percentDesc, prometheus.GaugeValue, st.Percent, st.ID)
	}
	ch <- prometheus.MustNewConstMetric(marksDesc, prometheus.GaugeValue, float64(len(snap)))
}

// WriteTextfile writes the metrics of stats in the text exposition format,
// as read by the node exporter textfile collector.
func WriteTextfile(path string, stats *bench.Statistics, applyFilters bool) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewCollector(stats, applyFilters)); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, registry)
}
