package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qualitystar",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qualitystar",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint", "status"},
	)

	CollectorRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qualitystar",
			Subsystem: "coverage",
			Name:      "collector_runs_total",
			Help:      "Collector runs by outcome",
		},
		[]string{"status"},
	)

	NewInterfacesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qualitystar",
			Subsystem: "coverage",
			Name:      "new_interfaces_total",
			Help:      "Interfaces stored by source (gather or upload)",
		},
		[]string{"source"},
	)

	ReconciledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qualitystar",
			Subsystem: "coverage",
			Name:      "reconciled_total",
			Help:      "Gathered interfaces flipped to covered",
		},
	)

	SchedulerJobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qualitystar",
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduled job executions by outcome",
		},
		[]string{"job", "status"},
	)

	SchedulerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qualitystar",
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Scheduled job duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
		},
		[]string{"job"},
	)

	SchedulerJobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "qualitystar",
			Subsystem: "scheduler",
			Name:      "jobs",
			Help:      "Currently registered scheduled jobs",
		},
	)
)

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	if endpoint == "" {
		endpoint = "unmatched"
	}
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordCollectorRun records one collector run and the interfaces it stored
func RecordCollectorRun(newInterfaces int, err error) {
	CollectorRunsTotal.WithLabelValues(statusLabel(err)).Inc()
	if newInterfaces > 0 {
		NewInterfacesTotal.WithLabelValues("gather").Add(float64(newInterfaces))
	}
}

// RecordUploads records interfaces stored from a report
func RecordUploads(created int) {
	if created > 0 {
		NewInterfacesTotal.WithLabelValues("upload").Add(float64(created))
	}
}

// RecordReconciled records rows flipped by the reconciler
func RecordReconciled(n int64) {
	if n > 0 {
		ReconciledTotal.Add(float64(n))
	}
}

// RecordJobRun records a scheduled job execution
func RecordJobRun(job string, durationSec float64, err error) {
	SchedulerJobRunsTotal.WithLabelValues(job, statusLabel(err)).Inc()
	SchedulerJobDuration.WithLabelValues(job).Observe(durationSec)
}

// SetScheduledJobs sets the registered job gauge
func SetScheduledJobs(n int) {
	SchedulerJobs.Set(float64(n))
}
