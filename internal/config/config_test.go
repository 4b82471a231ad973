package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ENVIRONMENT", "local")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DatabaseDriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "http://localhost:9090", cfg.PrometheusURL)
	assert.Equal(t, "http_server_requests_seconds_count", cfg.PrometheusQuery)
	assert.Equal(t, DedupScopeURL, cfg.ReportDedupScope)
	assert.Equal(t, time.Hour, cfg.CollectInterval)
	require.Len(t, cfg.SchedulerJobs, 1)
	assert.Equal(t, TaskCollect, cfg.SchedulerJobs[0].Task)
	assert.Equal(t, "interval", cfg.SchedulerJobs[0].Trigger.Type)
	assert.Same(t, cfg, GetGlobal())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":        {"DB_DRIVER", "mysql"},
		"dedup":         {"REPORT_DEDUP_SCOPE", "everything"},
		"prometheus":    {"PROMETHEUS_URL", "not a url"},
		"default key":   {"ENVIRONMENT", "production"},
		"zero interval": {"COLLECT_INTERVAL", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadSchedulerJobsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yml")
	content := `
jobs:
  - id: collect-hourly
    task: collect
    trigger:
      type: interval
      every: 30m
  - task: Reconcile
    name: nightly reconcile
    trigger:
      type: cron
      expression: "0 2 * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	jobs, err := LoadSchedulerJobs(path, time.Hour)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "collect-hourly", jobs[0].ID)
	assert.Equal(t, "collect", jobs[0].Name)
	assert.Equal(t, 30*time.Minute, jobs[0].Trigger.Every)
	assert.Equal(t, TaskReconcile, jobs[1].Task)
	assert.Equal(t, "0 2 * * *", jobs[1].Trigger.Expression)
}

func TestLoadSchedulerJobsRejectsUnknownTask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - task: sweep\n"), 0o600))

	_, err := LoadSchedulerJobs(path, time.Hour)
	assert.Error(t, err)
}
