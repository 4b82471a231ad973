package schedulerhandler

import (
	"context"
	"strings"
	"time"

	"github.com/xdd7520/QualityStar/internal/config"
	"github.com/xdd7520/QualityStar/internal/infrastructure/crontab"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/schedulerreq"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type SchedulerHandler struct {
	scheduler *crontab.Scheduler
	location  *time.Location
}

func NewSchedulerHandler(scheduler *crontab.Scheduler, cfg *config.Config) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: scheduler,
		location:  cfg.Location(),
	}
}

func (h *SchedulerHandler) ListJobs() []crontab.JobInfo {
	jobs := h.scheduler.ListJobs()
	if jobs == nil {
		return []crontab.JobInfo{}
	}
	return jobs
}

// AddJob schedules a registered task and returns the stored job.
func (h *SchedulerHandler) AddJob(ctx context.Context, req schedulerreq.AddJobRequest) (*crontab.JobInfo, error) {
	trigger, err := ToTrigger(ctx, req.Trigger, h.location)
	if err != nil {
		return nil, err
	}

	id, err := h.scheduler.AddJob(ctx, crontab.JobSpec{
		ID:      strings.TrimSpace(req.ID),
		Name:    strings.TrimSpace(req.Name),
		Task:    strings.ToLower(strings.TrimSpace(req.Task)),
		Trigger: trigger,
	})
	if err != nil {
		return nil, err
	}
	for _, job := range h.scheduler.ListJobs() {
		if job.ID == id {
			return &job, nil
		}
	}
	return &crontab.JobInfo{ID: id, Name: req.Name, Task: req.Task}, nil
}

func (h *SchedulerHandler) RemoveJob(ctx context.Context, id string) error {
	return h.scheduler.RemoveJob(ctx, id)
}

// ToTrigger converts a trigger request. RunAt without a zone is read in loc.
func ToTrigger(ctx context.Context, req schedulerreq.TriggerRequest, loc *time.Location) (crontab.Trigger, error) {
	switch crontab.TriggerType(strings.ToLower(strings.TrimSpace(req.Type))) {
	case crontab.TriggerDate:
		at, err := crontab.ParseRunAt(req.RunAt, loc)
		if err != nil {
			return crontab.Trigger{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid run_at", err, "scheduler-handler-001")
		}
		return crontab.DateTrigger(at), nil
	case crontab.TriggerInterval:
		every, err := time.ParseDuration(strings.TrimSpace(req.Every))
		if err != nil {
			return crontab.Trigger{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid every", err, "scheduler-handler-002")
		}
		return crontab.IntervalTrigger(every), nil
	case crontab.TriggerCron:
		return crontab.CronTrigger(req.Expression), nil
	default:
		return crontab.Trigger{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "trigger type must be date, interval or cron", nil, "scheduler-handler-003")
	}
}
