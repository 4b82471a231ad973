// Package runlock provides the named locks that keep collector and ingestion runs from overlapping.
package runlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

const (
	DefaultTTL  = 5 * time.Minute
	DefaultWait = 30 * time.Second

	retryBackoff = 100 * time.Millisecond
)

func busy(ctx context.Context, key string, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeConflict,
		"another run holding "+key+" is still in progress", err, "runlock-001")
}

// ===============================================
// Redis
// ===============================================

// RedisLocker takes locks in redis so every replica of the service shares them.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
}

var _ coverage.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client redis.UniversalClient, ttl, wait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if wait <= 0 {
		wait = DefaultWait
	}
	return &RedisLocker{
		client: redislock.New(client),
		ttl:    ttl,
		wait:   wait,
	}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string) (coverage.Lock, error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	lock, err := l.client.Obtain(waitCtx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryBackoff),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
			return nil, busy(ctx, key, err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"failed to obtain run lock", err, "runlock-002")
	}
	return newRedisLock(lock, key, l.ttl), nil
}

// redisLock extends its ttl every ttl/3 until released, so runs longer than the ttl keep the key.
type redisLock struct {
	lock   *redislock.Lock
	key    string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func newRedisLock(lock *redislock.Lock, key string, ttl time.Duration) *redisLock {
	ctx, cancel := context.WithCancel(context.Background())
	l := &redisLock{
		lock:   lock,
		key:    key,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go l.keepAlive(ctx, ttl)
	return l
}

func (l *redisLock) keepAlive(ctx context.Context, ttl time.Duration) {
	defer close(l.done)

	interval := ttl / 3
	if interval <= 0 {
		interval = ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.lock.Refresh(ctx, ttl, nil); err != nil {
				if ctx.Err() != nil {
					return
				}
				log := logger.GetLogger()
				log.Warn().Err(err).Str("key", l.key).Msg("failed to refresh run lock")
				return
			}
		}
	}
}

func (l *redisLock) Release(ctx context.Context) error {
	var err error
	l.once.Do(func() {
		l.cancel()
		<-l.done

		err = l.lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			log := logger.GetLogger()
			log.Warn().Str("key", l.key).Msg("run lock expired before release")
			err = nil
		}
	})
	return err
}

// ===============================================
// In-process
// ===============================================

// LocalLocker is a keyed mutex for single-instance deployments.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	wait  time.Duration
}

var _ coverage.Locker = (*LocalLocker)(nil)

func NewLocalLocker(wait time.Duration) *LocalLocker {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &LocalLocker{
		locks: make(map[string]*sync.Mutex),
		wait:  wait,
	}
}

func (l *LocalLocker) mutex(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

func (l *LocalLocker) Obtain(ctx context.Context, key string) (coverage.Lock, error) {
	m := l.mutex(key)
	if m.TryLock() {
		return &localLock{m: m}, nil
	}

	deadline := time.NewTimer(l.wait)
	defer deadline.Stop()
	ticker := time.NewTicker(retryBackoff)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, busy(ctx, key, ctx.Err())
		case <-deadline.C:
			return nil, busy(ctx, key, nil)
		case <-ticker.C:
			if m.TryLock() {
				return &localLock{m: m}, nil
			}
		}
	}
}

type localLock struct {
	once sync.Once
	m    *sync.Mutex
}

func (l *localLock) Release(context.Context) error {
	l.once.Do(l.m.Unlock)
	return nil
}

// ===============================================
// Construction
// ===============================================

// NewLocker returns a RedisLocker when redisURL is set and a LocalLocker otherwise.
// The cleanup func closes the redis client.
func NewLocker(ctx context.Context, redisURL string, ttl, wait time.Duration) (coverage.Locker, func(), error) {
	log := logger.GetLogger()
	if redisURL == "" {
		log.Info().Msg("REDIS_URL not set, using in-process run lock")
		return NewLocalLocker(wait), func() {}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	log.Info().Str("addr", opts.Addr).Msg("using redis run lock")

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}
	return NewRedisLocker(client, ttl, wait), cleanup, nil
}
