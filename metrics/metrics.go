// Package metrics provides Prometheus metrics for job generation runs.
// It exports:
//   - af3jobs_jobs_written_total: Counter with mode label
//   - af3jobs_molecules_total: Counter with mode and type labels
//   - af3jobs_triplets_skipped_total: Counter of incomplete molN_* triplets
//   - af3jobs_rna_modifications_total: Counter with mode and ccd_code labels
//   - af3jobs_run_duration_seconds: Histogram with mode label
//   - af3jobs_last_run_timestamp_seconds: Gauge with mode and status labels
//
// All metrics are registered with the Prometheus default registry during
// package initialization. One-shot runs export them with WriteTextfile for
// the node exporter textfile collector.
package metrics

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	JobsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "af3jobs_jobs_written_total",
			Help: "Fold input jobs written",
		},
		[]string{"mode"},
	)

	Molecules = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "af3jobs_molecules_total",
			Help: "Molecule blocks written",
		},
		[]string{"mode", "type"},
	)

	TripletsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "af3jobs_triplets_skipped_total",
			Help: "Manifest molecule triplets skipped for a blank field",
		},
	)

	RNAModifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "af3jobs_rna_modifications_total",
			Help: "Terminal 2'-O-methylations written, by CCD code",
		},
		[]string{"mode", "ccd_code"},
	)

	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "af3jobs_run_duration_seconds",
			Help:    "Wall time of a manifest run",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60},
		},
		[]string{"mode"},
	)

	LastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "af3jobs_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		},
		[]string{"mode", "status"},
	)
)

func init() {
	prometheus.MustRegister(JobsWritten)
	prometheus.MustRegister(Molecules)
	prometheus.MustRegister(TripletsSkipped)
	prometheus.MustRegister(RNAModifications)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(LastRun)
}

// WriteTextfile writes every metric of the default gatherer to path in
// the text exposition format. The file must end in .prom to be picked up
// by the textfile collector.
func WriteTextfile(path string) error {
	if !strings.HasSuffix(path, ".prom") {
		return fmt.Errorf("metrics file %s must have a .prom extension", filepath.Base(path))
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
