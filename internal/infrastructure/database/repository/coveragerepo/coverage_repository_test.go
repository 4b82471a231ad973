package coveragerepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/databasetest"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/coveragerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/projectmappingrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
)

type fixture struct {
	db       *transaction.Database
	mappings projectmapping.ProjectMappingRepository
	gathers  coverage.GatherInterfaceRepository
	uploads  coverage.UploadInterfaceRepository
}

func newFixture(t *testing.T) *fixture {
	db := transaction.NewDatabase(databasetest.New(t))
	return &fixture{
		db:       db,
		mappings: projectmappingrepo.NewProjectMappingGormRepository(db),
		gathers:  coveragerepo.NewGatherInterfaceGormRepository(db),
		uploads:  coveragerepo.NewUploadInterfaceGormRepository(db),
	}
}

func (f *fixture) mapping(t *testing.T, eureka, upload string) *projectmapping.ProjectMapping {
	m := projectmapping.NewProjectMapping(eureka, upload, "", "")
	require.NoError(t, f.mappings.Create(context.Background(), m))
	return m
}

func TestMarkCovered_FlipsOnlyMatchingRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	orders := f.mapping(t, "order-svc", "OrderService")
	billing := f.mapping(t, "billing-svc", "")

	require.NoError(t, f.gathers.CreateBatch(ctx, []*coverage.GatherInterface{
		{URL: "/api/orders", ProjectMappingID: orders.ID, Method: "GET"},
		{URL: "/api/orders", ProjectMappingID: orders.ID, Method: "POST"},
		{URL: "/api/bills", ProjectMappingID: billing.ID, Method: "GET"},
	}))
	require.NoError(t, f.uploads.CreateBatch(ctx, []*coverage.UploadInterface{
		{URL: "/api/orders", Name: "OrderService", Method: "GET", IsActive: true},
		{URL: "/api/bills", Name: "", Method: "GET", IsActive: true},
		{URL: "/api/orders", Name: "OtherService", Method: "POST", IsActive: true},
	}))

	changed, err := f.gathers.MarkCovered(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	active := true
	covered, total, err := f.gathers.FindByFilter(ctx, coverage.GatherFilter{IsActive: &active}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "/api/orders", covered[0].URL)
	assert.Equal(t, "GET", covered[0].Method)

	again, err := f.gathers.MarkCovered(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestGatherExistsAndLabels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := f.mapping(t, "user-svc", "UserService")

	g := &coverage.GatherInterface{
		URL:              "/api/users",
		ProjectMappingID: m.ID,
		Method:           "GET",
		Labels:           map[string]string{"application": "USER-SVC"},
	}
	require.NoError(t, f.gathers.CreateBatch(ctx, []*coverage.GatherInterface{g}))
	assert.NotZero(t, g.ID)

	ok, err := f.gathers.Exists(ctx, g.Key())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.gathers.Exists(ctx, coverage.GatherKey{ProjectMappingID: m.ID, URL: "/api/users", Method: "DELETE"})
	require.NoError(t, err)
	assert.False(t, ok)

	rows, _, err := f.gathers.FindByFilter(ctx, coverage.GatherFilter{}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "USER-SVC", rows[0].Labels["application"])
	assert.False(t, rows[0].IsActive)
}

func TestCountByProjectAndCoverageRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.mapping(t, "a-svc", "A")
	b := f.mapping(t, "b-svc", "B")

	require.NoError(t, f.gathers.CreateBatch(ctx, []*coverage.GatherInterface{
		{URL: "/api/a1", ProjectMappingID: a.ID, Method: "GET", IsActive: true},
		{URL: "/api/a2", ProjectMappingID: a.ID, Method: "GET"},
		{URL: "/api/b1", ProjectMappingID: b.ID, Method: "GET"},
	}))

	counts, err := f.gathers.CountByProject(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "a-svc", counts[0].EurekaName)
	assert.Equal(t, int64(2), counts[0].Total)
	assert.Equal(t, int64(1), counts[0].Covered)
	assert.Equal(t, int64(1), counts[1].Total)
	assert.Zero(t, counts[1].Covered)

	rows, err := f.gathers.ListCoverageRows(ctx, coverage.GatherFilter{ProjectMappingID: &a.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "/api/a1", rows[0].URL)
	assert.True(t, rows[0].Covered)
	assert.False(t, rows[1].Covered)
}

func TestUploadExistsAndPaging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	batch := []*coverage.UploadInterface{
		{URL: "/api/x", Name: "Svc", Method: "GET", IsActive: true},
		{URL: "/api/y", Name: "Svc", Method: "GET", IsActive: true},
		{URL: "/api/z", Name: "Other", Method: "PUT", IsActive: true},
	}
	require.NoError(t, f.uploads.CreateBatch(ctx, batch))

	ok, err := f.uploads.Exists(ctx, "/api/x", "Svc")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.uploads.Exists(ctx, "/api/x", "Other")
	require.NoError(t, err)
	assert.False(t, ok)

	name := "Svc"
	page, total, err := f.uploads.FindByFilter(ctx, coverage.UploadFilter{Name: &name}, query.NewPagePagination(1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, "/api/x", page[0].URL)
}

func TestCreateBatchRollsBackInsideTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.db.WithTx(ctx, func(ctx context.Context) error {
		require.NoError(t, f.uploads.CreateBatch(ctx, []*coverage.UploadInterface{
			{URL: "/api/tx", Name: "Svc", Method: "GET", IsActive: true},
		}))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	ok, err := f.uploads.Exists(ctx, "/api/tx", "Svc")
	require.NoError(t, err)
	assert.False(t, ok)
}
