package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xdd7520/QualityStar/internal/config"
	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/role"
	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/infrastructure/crontab"
)

type DataInitializer struct {
	cfg        *config.Config
	roles      *role.RoleService
	users      *user.UserService
	collector  *coverage.CollectorService
	reconciler *coverage.ReconcilerService
	scheduler  *crontab.Scheduler
	logger     zerolog.Logger
}

// Install seeds the first superuser, registers the scheduler tasks and schedules the configured jobs.
// Jobs whose trigger can no longer fire are logged and skipped.
func (d *DataInitializer) Install(ctx context.Context) error {
	if err := d.ensureSuperuser(ctx); err != nil {
		return err
	}

	d.scheduler.RegisterTask(config.TaskCollect, func(ctx context.Context) error {
		_, err := d.collector.QueryPrometheus(ctx)
		return err
	})
	d.scheduler.RegisterTask(config.TaskReconcile, func(ctx context.Context) error {
		_, err := d.reconciler.UpdateCoverage(ctx)
		return err
	})

	loc := d.cfg.Location()
	for _, entry := range d.cfg.SchedulerJobs {
		trigger, err := toTrigger(entry.Trigger, loc)
		if err != nil {
			return fmt.Errorf("job %q trigger: %w", entry.ID, err)
		}
		_, err = d.scheduler.AddJob(ctx, crontab.JobSpec{
			ID:      entry.ID,
			Name:    entry.Name,
			Task:    entry.Task,
			Trigger: trigger,
		})
		if errors.Is(err, crontab.ErrTriggerOutOfRange) {
			d.logger.Warn().Err(err).Str("job_id", entry.ID).Msg("skipping job whose trigger will never fire")
			continue
		}
		if err != nil {
			return fmt.Errorf("schedule job %q: %w", entry.ID, err)
		}
	}
	return nil
}

// CollectOnce runs the collector outside the schedule. Failures are logged only.
func (d *DataInitializer) CollectOnce(ctx context.Context) {
	result, err := d.collector.QueryPrometheus(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("startup collection failed")
		return
	}
	d.logger.Info().
		Str("batch_id", result.BatchID).
		Int("new_interfaces", result.NewInterfaces).
		Msg("startup collection finished")
}

func (d *DataInitializer) ensureSuperuser(ctx context.Context) error {
	adminRole, err := d.roles.EnsureRole(ctx, d.cfg.FirstSuperuserRole, "Administrators")
	if err != nil {
		return err
	}
	su, created, err := d.users.EnsureSuperuser(ctx, d.cfg.FirstSuperuser, d.cfg.FirstSuperuserPassword, &adminRole.ID)
	if err != nil {
		return err
	}
	if created {
		d.logger.Info().Str("email", su.Email).Msg("first superuser created")
	}
	return nil
}

func toTrigger(t config.SchedulerTrigger, loc *time.Location) (crontab.Trigger, error) {
	switch crontab.TriggerType(strings.ToLower(strings.TrimSpace(t.Type))) {
	case crontab.TriggerDate:
		at, err := crontab.ParseRunAt(t.RunAt, loc)
		if err != nil {
			return crontab.Trigger{}, err
		}
		return crontab.DateTrigger(at), nil
	case crontab.TriggerInterval:
		return crontab.IntervalTrigger(t.Every), nil
	case crontab.TriggerCron:
		return crontab.CronTrigger(t.Expression), nil
	default:
		return crontab.Trigger{}, fmt.Errorf("unsupported trigger type %q", t.Type)
	}
}
