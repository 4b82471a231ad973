package coverage

import (
	"context"
	"errors"
	"sync"

	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type fakeSource struct {
	samples []MetricSample
	err     error
	queries []string
}

func (f *fakeSource) Query(_ context.Context, promql string) ([]MetricSample, error) {
	f.queries = append(f.queries, promql)
	return f.samples, f.err
}

type fakeResolver struct {
	mappings map[string]*projectmapping.ProjectMapping
	nextID   uint
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{mappings: map[string]*projectmapping.ProjectMapping{}}
}

func (f *fakeResolver) ResolveByEurekaName(_ context.Context, name string) (*projectmapping.ProjectMapping, bool, error) {
	if m, ok := f.mappings[name]; ok {
		return m, false, nil
	}
	f.nextID++
	m := &projectmapping.ProjectMapping{ID: f.nextID, EurekaName: name}
	f.mappings[name] = m
	return m, true, nil
}

type fakeGathers struct {
	rows        []*GatherInterface
	createErr   error
	markCalls   int
	markCovered int64
}

func (f *fakeGathers) Exists(_ context.Context, key GatherKey) (bool, error) {
	for _, r := range f.rows {
		if r.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGathers) CreateBatch(_ context.Context, items []*GatherInterface) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows = append(f.rows, items...)
	return nil
}

func (f *fakeGathers) FindByFilter(context.Context, GatherFilter, *query.Pagination) ([]*GatherInterface, int64, error) {
	return f.rows, int64(len(f.rows)), nil
}

func (f *fakeGathers) MarkCovered(context.Context) (int64, error) {
	f.markCalls++
	return f.markCovered, nil
}

func (f *fakeGathers) CountByProject(context.Context) ([]ProjectCoverageCount, error) {
	return nil, nil
}

func (f *fakeGathers) ListCoverageRows(context.Context, GatherFilter) ([]CoverageRow, error) {
	return nil, nil
}

type fakeUploads struct {
	rows []*UploadInterface
}

func (f *fakeUploads) Exists(_ context.Context, url, name string) (bool, error) {
	for _, r := range f.rows {
		if r.URL == url && r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUploads) CreateBatch(_ context.Context, items []*UploadInterface) error {
	f.rows = append(f.rows, items...)
	return nil
}

func (f *fakeUploads) FindByFilter(context.Context, UploadFilter, *query.Pagination) ([]*UploadInterface, int64, error) {
	return f.rows, int64(len(f.rows)), nil
}

type fakeLogs struct {
	rows []*transactionlog.TransactionLog
}

func (f *fakeLogs) CreateBatch(_ context.Context, logs []*transactionlog.TransactionLog) error {
	f.rows = append(f.rows, logs...)
	return nil
}

func (f *fakeLogs) FindByFilter(context.Context, transactionlog.TransactionLogFilter, *query.Pagination) ([]*transactionlog.TransactionLog, int64, error) {
	return f.rows, int64(len(f.rows)), nil
}

type fakeIgnores struct {
	rules []*ignore.IgnoreInterface
}

func (f *fakeIgnores) LoadMatcher(context.Context) (*ignore.Matcher, error) {
	return ignore.NewMatcher(f.rules), nil
}

// passthroughUoW runs fn directly; the fakes do not roll back.
type passthroughUoW struct{}

func (passthroughUoW) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLock struct{ released *bool }

func (l fakeLock) Release(context.Context) error {
	*l.released = true
	return nil
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	released bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (f *fakeLocker) Obtain(ctx context.Context, key string) (Lock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[key] {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeConflict, "lock held", errors.New("not obtained"), "")
	}
	return fakeLock{released: &f.released}, nil
}
