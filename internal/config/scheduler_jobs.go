package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
)

const (
	TaskCollect   = "collect"
	TaskReconcile = "reconcile"
)

// SchedulerTrigger mirrors the trigger options accepted by the scheduler.
type SchedulerTrigger struct {
	Type       string        `yaml:"type"`
	Every      time.Duration `yaml:"every"`
	Expression string        `yaml:"expression"`
	RunAt      string        `yaml:"run_at"`
}

// SchedulerJobEntry is one job registered at startup.
type SchedulerJobEntry struct {
	ID      string           `yaml:"id"`
	Name    string           `yaml:"name"`
	Task    string           `yaml:"task"`
	Trigger SchedulerTrigger `yaml:"trigger"`
}

type schedulerJobsDocument struct {
	Jobs []SchedulerJobEntry `yaml:"jobs"`
}

// DefaultSchedulerJobs registers the collector on a fixed interval.
func DefaultSchedulerJobs(interval time.Duration) []SchedulerJobEntry {
	return []SchedulerJobEntry{
		{
			ID:   "query_prometheus",
			Name: "query_prometheus",
			Task: TaskCollect,
			Trigger: SchedulerTrigger{
				Type:  "interval",
				Every: interval,
			},
		},
	}
}

// LoadSchedulerJobs parses the yaml job file at path. An empty path yields the default jobs.
func LoadSchedulerJobs(path string, interval time.Duration) ([]SchedulerJobEntry, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSchedulerJobs(interval), nil
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read scheduler jobs %q: %w", cleanPath, err)
	}
	log := logger.GetLogger()
	log.Info().Str("path", cleanPath).Msg("loading scheduler jobs file")

	var doc schedulerJobsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scheduler jobs %q: %w", cleanPath, err)
	}

	seen := make(map[string]struct{}, len(doc.Jobs))
	for i := range doc.Jobs {
		job := &doc.Jobs[i]
		job.Task = strings.ToLower(strings.TrimSpace(job.Task))
		switch job.Task {
		case TaskCollect, TaskReconcile:
		default:
			return nil, fmt.Errorf("job %d: unknown task %q", i, job.Task)
		}
		if job.Name == "" {
			job.Name = job.Task
		}
		if job.ID != "" {
			if _, dup := seen[job.ID]; dup {
				return nil, fmt.Errorf("job %d: duplicate id %q", i, job.ID)
			}
			seen[job.ID] = struct{}{}
		}
	}
	return doc.Jobs, nil
}
