package crontab

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	s := NewScheduler(Settings{Location: loc, JobTimeout: time.Second})
	s.RegisterTask("collect", func(context.Context) error { return nil })
	return s
}

func TestAddJob_ListAndRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestScheduler(t)

	id, err := s.AddJob(ctx, JobSpec{ID: "query_prometheus", Task: "collect", Trigger: IntervalTrigger(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "query_prometheus", id)

	cronID, err := s.AddJob(ctx, JobSpec{Name: "nightly", Task: "COLLECT", Trigger: CronTrigger("0 2 * * *")})
	require.NoError(t, err)
	assert.Len(t, cronID, 32)

	jobs := s.ListJobs()
	require.Len(t, jobs, 2)
	byID := map[string]JobInfo{}
	for _, j := range jobs {
		byID[j.ID] = j
	}

	interval := byID["query_prometheus"]
	assert.Equal(t, "collect", interval.Name)
	assert.Equal(t, "interval[1h0m0s]", interval.Trigger)
	require.NotNil(t, interval.NextRunTime)
	assert.Equal(t, "Asia/Shanghai", interval.NextRunTime.Location().String())

	nightly := byID[cronID]
	assert.Equal(t, "nightly", nightly.Name)
	assert.Equal(t, "cron[0 2 * * *]", nightly.Trigger)
	require.NotNil(t, nightly.NextRunTime)
	assert.Equal(t, 2, nightly.NextRunTime.Hour())

	require.NoError(t, s.RemoveJob(ctx, "query_prometheus"))
	assert.Len(t, s.ListJobs(), 1)
}

func TestAddJob_Rejections(t *testing.T) {
	ctx := context.Background()
	s := newTestScheduler(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.AddJob(ctx, JobSpec{Task: "collect", Trigger: DateTrigger(now.Add(-time.Minute))})
	assert.ErrorIs(t, err, ErrTriggerOutOfRange)

	_, err = s.AddJob(ctx, JobSpec{Task: "collect", Trigger: DateTrigger(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))})
	assert.ErrorIs(t, err, ErrTriggerOutOfRange)

	_, err = s.AddJob(ctx, JobSpec{Task: "collect", Trigger: IntervalTrigger(0)})
	assert.ErrorIs(t, err, ErrTriggerOutOfRange)

	_, err = s.AddJob(ctx, JobSpec{Task: "collect", Trigger: IntervalTrigger(time.Nanosecond)})
	assert.ErrorIs(t, err, ErrTriggerOutOfRange)

	_, err = s.AddJob(ctx, JobSpec{Task: "collect", Trigger: IntervalTrigger(999 * time.Millisecond)})
	assert.ErrorIs(t, err, ErrTriggerOutOfRange)

	_, err = s.AddJob(ctx, JobSpec{Task: "collect", Trigger: CronTrigger("not a cron")})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = s.AddJob(ctx, JobSpec{Task: "collect", Trigger: Trigger{Type: "weekly"}})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = s.AddJob(ctx, JobSpec{Task: "missing", Trigger: IntervalTrigger(time.Hour)})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = s.AddJob(ctx, JobSpec{ID: "dup", Task: "collect", Trigger: IntervalTrigger(time.Hour)})
	require.NoError(t, err)
	_, err = s.AddJob(ctx, JobSpec{ID: "dup", Task: "collect", Trigger: IntervalTrigger(time.Hour)})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))

	assert.Len(t, s.ListJobs(), 1)
}

func TestAddJob_IntervalFloor(t *testing.T) {
	ctx := context.Background()
	s := newTestScheduler(t)

	id, err := s.AddJob(ctx, JobSpec{ID: "every-second", Task: "collect", Trigger: IntervalTrigger(time.Second)})
	require.NoError(t, err)
	assert.Equal(t, "every-second", id)
	assert.Len(t, s.ListJobs(), 1)
}

func TestJobInfo_JSONUsesJobID(t *testing.T) {
	s := newTestScheduler(t)
	_, err := s.AddJob(context.Background(), JobSpec{ID: "nightly", Task: "collect", Trigger: CronTrigger("0 2 * * *")})
	require.NoError(t, err)

	raw, err := json.Marshal(s.ListJobs())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "nightly", decoded[0]["job_id"])
	assert.NotContains(t, decoded[0], "id")
}

func TestRemoveJob_Unknown(t *testing.T) {
	s := newTestScheduler(t)
	err := s.RemoveJob(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrJobNotFound))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestRun_FiresIntervalAndDateJobs(t *testing.T) {
	s := newTestScheduler(t)

	var ticks, once atomic.Int32
	s.RegisterTask("tick", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		ticks.Add(1)
		return nil
	})
	s.RegisterTask("once", func(context.Context) error {
		once.Add(1)
		return errors.New("boom")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	_, err := s.AddJob(ctx, JobSpec{ID: "tick", Task: "tick", Trigger: IntervalTrigger(time.Second)})
	require.NoError(t, err)
	_, err = s.AddJob(ctx, JobSpec{ID: "once", Task: "once", Trigger: DateTrigger(time.Now().Add(time.Second))})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return ticks.Load() >= 1 && once.Load() == 1 }, 5*time.Second, 50*time.Millisecond)
	require.Eventually(t, func() bool { return len(s.ListJobs()) == 1 }, 2*time.Second, 50*time.Millisecond)
	assert.Equal(t, "tick", s.ListJobs()[0].ID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Equal(t, int32(1), once.Load())
}
