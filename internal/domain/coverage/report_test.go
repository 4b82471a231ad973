package coverage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
)

func newTestReportService(ignores *fakeIgnores, uploads *fakeUploads, logs *fakeLogs, gathers *fakeGathers, scope DedupScope) *ReportService {
	return NewReportService(ignores, uploads, logs, passthroughUoW{}, newFakeLocker(), NewReconcilerService(gathers), ReportSettings{DedupScope: scope})
}

func TestUploadURIsSingleEntry(t *testing.T) {
	uploads := &fakeUploads{}
	logs := &fakeLogs{}
	gathers := &fakeGathers{}

	result, err := newTestReportService(&fakeIgnores{}, uploads, logs, gathers, DedupByURL).UploadURIs(context.Background(), &Report{
		BaseURL: "http://svc1.local",
		Groups: []ReportGroup{{
			Name: "svc1",
			URLs: []ReportURL{{URL: "/api/x", Method: "GET"}},
		}},
	})
	require.NoError(t, err)

	require.Len(t, uploads.rows, 1)
	assert.Equal(t, "/api/x", uploads.rows[0].URL)
	assert.Equal(t, "svc1", uploads.rows[0].Name)
	assert.True(t, uploads.rows[0].IsActive)

	require.Len(t, logs.rows, 1)
	assert.Equal(t, transactionlog.ActionUpload, logs.rows[0].Action)
	assert.Equal(t, "svc1", logs.rows[0].Name)
	assert.Equal(t, 1, logs.rows[0].Count)
	assert.Equal(t, result.BatchID, logs.rows[0].BatchID)

	assert.Equal(t, 1, gathers.markCalls)
}

func TestUploadURIsSkipsIgnoredURLs(t *testing.T) {
	uploads := &fakeUploads{}
	ignores := &fakeIgnores{rules: []*ignore.IgnoreInterface{{URI: "/api/health"}, {URI: "/api/debug/*"}}}

	result, err := newTestReportService(ignores, uploads, &fakeLogs{}, &fakeGathers{}, DedupByURL).UploadURIs(context.Background(), &Report{
		Groups: []ReportGroup{{
			Name: "svc1",
			URLs: []ReportURL{
				{URL: "/api/health", Method: "GET"},
				{URL: "/api/debug/vars", Method: "GET"},
				{URL: "/api/orders", Method: "GET"},
			},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SkippedIgnored)
	require.Len(t, uploads.rows, 1)
	assert.Equal(t, "/api/orders", uploads.rows[0].URL)
}

func TestUploadURIsDedupByURLKeepsFirstGroup(t *testing.T) {
	uploads := &fakeUploads{}
	logs := &fakeLogs{}
	report := &Report{Groups: []ReportGroup{
		{Name: "svc1", URLs: []ReportURL{{URL: "/api/shared", Method: "GET"}}},
		{Name: "svc2", URLs: []ReportURL{{URL: "/api/shared", Method: "GET"}, {URL: "/api/own", Method: "POST"}}},
	}}

	result, err := newTestReportService(&fakeIgnores{}, uploads, logs, &fakeGathers{}, DedupByURL).UploadURIs(context.Background(), report)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SkippedRepeated)
	require.Len(t, uploads.rows, 2)
	assert.Equal(t, "svc1", uploads.rows[0].Name)
	assert.Equal(t, "/api/own", uploads.rows[1].URL)
	assert.Equal(t, "POST", uploads.rows[1].Method)
	assert.Equal(t, map[string]int{"svc1": 1, "svc2": 1}, result.PerGroup)
}

func TestUploadURIsDedupByGroupKeepsEveryGroup(t *testing.T) {
	uploads := &fakeUploads{}
	report := &Report{Groups: []ReportGroup{
		{Name: "svc1", URLs: []ReportURL{{URL: "/api/shared", Method: "GET"}, {URL: "/api/shared", Method: "GET"}}},
		{Name: "svc2", URLs: []ReportURL{{URL: "/api/shared", Method: "GET"}}},
	}}

	result, err := newTestReportService(&fakeIgnores{}, uploads, &fakeLogs{}, &fakeGathers{}, DedupByGroup).UploadURIs(context.Background(), report)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SkippedRepeated)
	assert.Len(t, uploads.rows, 2)
}

func TestUploadURIsSkipsExistingAndStillReconciles(t *testing.T) {
	uploads := &fakeUploads{rows: []*UploadInterface{{URL: "/api/x", Name: "svc1", Method: "GET", IsActive: true}}}
	logs := &fakeLogs{}
	gathers := &fakeGathers{markCovered: 3}

	result, err := newTestReportService(&fakeIgnores{}, uploads, logs, gathers, DedupByURL).UploadURIs(context.Background(), &Report{
		Groups: []ReportGroup{{Name: "svc1", URLs: []ReportURL{{URL: "/api/x", Method: "GET"}}}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SkippedExisting)
	assert.Equal(t, 0, result.Created)
	assert.Len(t, uploads.rows, 1)
	assert.Empty(t, logs.rows)
	assert.Equal(t, 1, gathers.markCalls)
	assert.Equal(t, int64(3), result.Reconciled)
}
