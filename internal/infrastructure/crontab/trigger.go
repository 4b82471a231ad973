package crontab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

var (
	// ErrTriggerOutOfRange is returned for a trigger that would never fire: a past date,
	// a year beyond 9999 or an interval below one second.
	ErrTriggerOutOfRange = errors.New("trigger run time out of range")
	// ErrJobNotFound is returned when removing an id that is not scheduled.
	ErrJobNotFound = errors.New("job not found")
)

const maxTriggerYear = 9999

type TriggerType string

const (
	TriggerDate     TriggerType = "date"
	TriggerInterval TriggerType = "interval"
	TriggerCron     TriggerType = "cron"
)

// Trigger decides when a job fires. Only the field matching Type is read.
type Trigger struct {
	Type       TriggerType
	RunAt      time.Time
	Every      time.Duration
	Expression string
}

func DateTrigger(at time.Time) Trigger {
	return Trigger{Type: TriggerDate, RunAt: at}
}

func IntervalTrigger(every time.Duration) Trigger {
	return Trigger{Type: TriggerInterval, Every: every}
}

func CronTrigger(expression string) Trigger {
	return Trigger{Type: TriggerCron, Expression: expression}
}

// runAtLayouts are tried in order by ParseRunAt. Layouts without a zone are read in the scheduler location.
var runAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseRunAt reads a date trigger time.
func ParseRunAt(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range runAtLayouts {
		if at, err := time.ParseInLocation(layout, value, loc); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized run_at %q", value)
}

// onceSchedule fires at a single instant and never again.
type onceSchedule struct {
	at time.Time
}

func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// compile validates t against now and returns its cron schedule and display string.
func (t Trigger) compile(ctx context.Context, now time.Time, loc *time.Location) (cron.Schedule, string, error) {
	switch t.Type {
	case TriggerDate:
		if t.RunAt.IsZero() || t.RunAt.Year() > maxTriggerYear || !t.RunAt.After(now) {
			return nil, "", outOfRange(ctx, fmt.Sprintf("date %s is not in the future", t.RunAt.Format(time.RFC3339)))
		}
		at := t.RunAt.In(loc)
		return onceSchedule{at: at}, fmt.Sprintf("date[%s]", at.Format("2006-01-02 15:04:05 MST")), nil

	case TriggerInterval:
		if t.Every < time.Second {
			return nil, "", outOfRange(ctx, fmt.Sprintf("interval %s is shorter than one second", t.Every))
		}
		return cron.Every(t.Every), fmt.Sprintf("interval[%s]", t.Every), nil

	case TriggerCron:
		expr := strings.TrimSpace(t.Expression)
		sched, err := cron.ParseStandard(expr)
		if err != nil {
			return nil, "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("invalid cron expression %q", expr), err, "scheduler-trigger-002")
		}
		return sched, fmt.Sprintf("cron[%s]", expr), nil

	default:
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown trigger type %q", t.Type), nil, "scheduler-trigger-003")
	}
}

func outOfRange(ctx context.Context, msg string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeValidation,
		msg, ErrTriggerOutOfRange, "scheduler-trigger-001")
}
