package coverage

import (
	"context"
	"strings"
	"time"

	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/query"
)

// ===============================================
// Entities
// ===============================================

// GatherInterface is an endpoint observed in production metrics. IsActive means a matching
// upload exists, i.e. the endpoint is covered by automation.
type GatherInterface struct {
	ID               uint              `json:"id"`
	URL              string            `json:"url"`
	ProjectMappingID uint              `json:"project_name_mapping_id"`
	Method           string            `json:"method"`
	Description      string            `json:"description"`
	IsActive         bool              `json:"is_active"`
	Labels           map[string]string `json:"labels,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// GatherKey is the identity of a GatherInterface.
type GatherKey struct {
	ProjectMappingID uint
	URL              string
	Method           string
}

func (g *GatherInterface) Key() GatherKey {
	return GatherKey{ProjectMappingID: g.ProjectMappingID, URL: g.URL, Method: g.Method}
}

// UploadInterface is an endpoint reported as exercised by the automation suite.
type UploadInterface struct {
	ID          uint      `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Method      string    `json:"method"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeMethod upper-cases an HTTP method so metric labels and reports compare equal.
func NormalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}

// ===============================================
// Repositories
// ===============================================

type GatherFilter struct {
	ProjectMappingID *uint
	IsActive         *bool
	Search           *string
}

type UploadFilter struct {
	Name   *string
	Search *string
}

// ProjectCoverageCount aggregates gathered interfaces per mapping.
type ProjectCoverageCount struct {
	ProjectMappingID uint
	EurekaName       string
	UploadName       string
	Name             string
	Total            int64
	Covered          int64
}

// CoverageRow is a gathered interface joined with its mapping.
type CoverageRow struct {
	EurekaName string
	Name       string
	URL        string
	Method     string
	Covered    bool
}

type GatherInterfaceRepository interface {
	Exists(ctx context.Context, key GatherKey) (bool, error)
	CreateBatch(ctx context.Context, interfaces []*GatherInterface) error
	FindByFilter(ctx context.Context, filter GatherFilter, pagination *query.Pagination) ([]*GatherInterface, int64, error)
	// MarkCovered flips is_active on every gathered interface that has an upload with the same url and
	// method under the mapping's upload_name. It returns the number of rows changed.
	MarkCovered(ctx context.Context) (int64, error)
	CountByProject(ctx context.Context) ([]ProjectCoverageCount, error)
	ListCoverageRows(ctx context.Context, filter GatherFilter) ([]CoverageRow, error)
}

type UploadInterfaceRepository interface {
	Exists(ctx context.Context, url, name string) (bool, error)
	CreateBatch(ctx context.Context, interfaces []*UploadInterface) error
	FindByFilter(ctx context.Context, filter UploadFilter, pagination *query.Pagination) ([]*UploadInterface, int64, error)
}

// ===============================================
// Ports
// ===============================================

// MetricSample is one series returned by the metrics backend.
type MetricSample struct {
	Application string
	URI         string
	Method      string
	Labels      map[string]string
}

type MetricSource interface {
	Query(ctx context.Context, promql string) ([]MetricSample, error)
}

type MappingResolver interface {
	ResolveByEurekaName(ctx context.Context, name string) (*projectmapping.ProjectMapping, bool, error)
}

type IgnoreListLoader interface {
	LoadMatcher(ctx context.Context) (*ignore.Matcher, error)
}

// UnitOfWork runs fn inside one database transaction carried on the context.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Lock interface {
	Release(ctx context.Context) error
}

// Locker serializes runs that share a key, across processes when backed by redis.
type Locker interface {
	Obtain(ctx context.Context, key string) (Lock, error)
}

const (
	LockKeyCollect = "qualitystar:coverage:collect"
	LockKeyReport  = "qualitystar:coverage:report"
)
