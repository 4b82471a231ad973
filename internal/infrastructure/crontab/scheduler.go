package crontab

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
	"github.com/xdd7520/QualityStar/internal/infrastructure/metrics"
	"github.com/xdd7520/QualityStar/internal/infrastructure/observability"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

const (
	DefaultJobTimeout = 10 * time.Minute
	shutdownGrace     = 30 * time.Second
	tracerName        = "qualitystar-scheduler"
)

// TaskFunc is the body of a scheduled job.
type TaskFunc func(ctx context.Context) error

// JobSpec describes a job to add. An empty ID is replaced by a generated one.
type JobSpec struct {
	ID      string
	Name    string
	Task    string
	Trigger Trigger
}

// JobInfo is the listing view of a scheduled job. NextRunTime is nil once a job will not fire again.
type JobInfo struct {
	ID          string     `json:"job_id"`
	Name        string     `json:"name"`
	Task        string     `json:"task"`
	NextRunTime *time.Time `json:"next_run_time"`
	Trigger     string     `json:"trigger"`
}

type Settings struct {
	Location   *time.Location
	JobTimeout time.Duration
}

type scheduledJob struct {
	spec     JobSpec
	entryID  cron.EntryID
	schedule cron.Schedule
	trigger  string
	once     bool
}

// Scheduler runs registered tasks on date, interval and cron triggers.
type Scheduler struct {
	cron       *cron.Cron
	cronLog    cronLogger
	loc        *time.Location
	jobTimeout time.Duration
	log        zerolog.Logger
	now        func() time.Time

	mu      sync.Mutex
	tasks   map[string]TaskFunc
	jobs    map[string]*scheduledJob
	baseCtx context.Context
}

func NewScheduler(settings Settings) *Scheduler {
	loc := settings.Location
	if loc == nil {
		loc = time.Local
	}
	timeout := settings.JobTimeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	log := logger.GetLogger().With().Str("component", "scheduler").Logger()
	cl := cronLogger{log: log}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		cronLog:    cl,
		loc:        loc,
		jobTimeout: timeout,
		log:        log,
		now:        time.Now,
		tasks:      make(map[string]TaskFunc),
		jobs:       make(map[string]*scheduledJob),
		baseCtx:    context.Background(),
	}
}

// RegisterTask makes fn schedulable under name.
func (s *Scheduler) RegisterTask(name string, fn TaskFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[strings.ToLower(name)] = fn
}

// Tasks returns the registered task names in sorted order.
func (s *Scheduler) Tasks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddJob schedules spec and returns its id.
func (s *Scheduler) AddJob(ctx context.Context, spec JobSpec) (string, error) {
	spec.Task = strings.ToLower(strings.TrimSpace(spec.Task))
	spec.ID = strings.TrimSpace(spec.ID)
	spec.Trigger.Type = TriggerType(strings.ToLower(strings.TrimSpace(string(spec.Trigger.Type))))

	s.mu.Lock()
	defer s.mu.Unlock()

	fn, ok := s.tasks[spec.Task]
	if !ok {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown task %q", spec.Task), nil, "scheduler-add-001")
	}

	schedule, description, err := spec.Trigger.compile(ctx, s.now(), s.loc)
	if err != nil {
		s.log.Error().Err(err).Str("job_id", spec.ID).Str("task", spec.Task).Msg("rejected job trigger")
		return "", err
	}

	if spec.ID == "" {
		spec.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if _, dup := s.jobs[spec.ID]; dup {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeConflict,
			fmt.Sprintf("job %q already exists", spec.ID), nil, "scheduler-add-002")
	}
	if spec.Name == "" {
		spec.Name = spec.Task
	}

	job := &scheduledJob{
		spec:     spec,
		schedule: schedule,
		trigger:  description,
		once:     spec.Trigger.Type == TriggerDate,
	}
	wrapped := cron.NewChain(cron.SkipIfStillRunning(s.cronLog)).Then(cron.FuncJob(func() {
		s.execute(job, fn)
	}))
	job.entryID = s.cron.Schedule(schedule, wrapped)
	s.jobs[spec.ID] = job
	metrics.SetScheduledJobs(len(s.jobs))

	s.log.Info().
		Str("job_id", spec.ID).
		Str("name", spec.Name).
		Str("task", spec.Task).
		Str("trigger", description).
		Msg("job scheduled")
	return spec.ID, nil
}

// RemoveJob unschedules id.
func (s *Scheduler) RemoveJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		s.log.Warn().Str("job_id", id).Msg("remove requested for unknown job")
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("job %q not found", id), ErrJobNotFound, "scheduler-remove-001")
	}
	s.cron.Remove(job.entryID)
	delete(s.jobs, id)
	metrics.SetScheduledJobs(len(s.jobs))

	s.log.Info().Str("job_id", id).Msg("job removed")
	return nil
}

// ListJobs returns the scheduled jobs ordered by next run time.
func (s *Scheduler) ListJobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().In(s.loc)
	infos := make([]JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		next := s.cron.Entry(job.entryID).Next
		if next.IsZero() {
			next = job.schedule.Next(now)
		}
		info := JobInfo{
			ID:      job.spec.ID,
			Name:    job.spec.Name,
			Task:    job.spec.Task,
			Trigger: job.trigger,
		}
		if !next.IsZero() {
			n := next.In(s.loc)
			info.NextRunTime = &n
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		a, b := infos[i].NextRunTime, infos[j].NextRunTime
		switch {
		case a == nil && b == nil:
			return infos[i].ID < infos[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return infos[i].ID < infos[j].ID
		}
	})
	return infos
}

// Run starts the scheduler and blocks until ctx is done. Running jobs get a grace period to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx = ctx
	jobs := len(s.jobs)
	s.mu.Unlock()

	s.cron.Start()
	s.log.Info().Int("jobs", jobs).Str("timezone", s.loc.String()).Msg("scheduler started")

	<-ctx.Done()

	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(shutdownGrace):
		s.log.Warn().Msg("scheduler stopped before running jobs finished")
	}
	s.log.Info().Msg("scheduler stopped")
	return nil
}

func (s *Scheduler) execute(job *scheduledJob, fn TaskFunc) {
	s.mu.Lock()
	base := s.baseCtx
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(base, s.jobTimeout)
	defer cancel()
	ctx, span := observability.StartSpan(ctx, tracerName, "scheduler."+job.spec.Task)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	metrics.RecordJobRun(job.spec.Task, elapsed.Seconds(), err)

	if err != nil {
		observability.RecordError(ctx, err)
		s.log.Error().Err(err).Str("job_id", job.spec.ID).Dur("elapsed", elapsed).Msg("job failed")
	} else {
		s.log.Info().Str("job_id", job.spec.ID).Dur("elapsed", elapsed).Msg("job finished")
	}

	if job.once {
		s.dropFired(job.spec.ID)
	}
}

// dropFired removes a one-shot job after its run.
func (s *Scheduler) dropFired(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		s.cron.Remove(job.entryID)
		delete(s.jobs, id)
		metrics.SetScheduledJobs(len(s.jobs))
	}
}
