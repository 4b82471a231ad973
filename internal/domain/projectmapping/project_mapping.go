package projectmapping

import (
	"context"
	"time"

	"github.com/xdd7520/QualityStar/internal/domain/query"
)

// ProjectMapping ties the service name seen in metrics (EurekaName) to the name the
// test reporter uses (UploadName) and a display Name.
type ProjectMapping struct {
	ID          uint      `json:"id"`
	UploadName  string    `json:"upload_name"`
	EurekaName  string    `json:"eureka_name"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectMappingFilter struct {
	EurekaName *string
	UploadName *string
	Search     *string
}

type ProjectMappingRepository interface {
	Create(ctx context.Context, mapping *ProjectMapping) error
	FindByID(ctx context.Context, id uint) (*ProjectMapping, error)
	FindOneByEurekaName(ctx context.Context, eurekaName string) (*ProjectMapping, error)
	FindByFilter(ctx context.Context, filter ProjectMappingFilter, pagination *query.Pagination) ([]*ProjectMapping, int64, error)
	Update(ctx context.Context, mapping *ProjectMapping) error
	Delete(ctx context.Context, id uint) error
}

// Cache memoizes mappings by eureka name. Implementations must be safe for concurrent use.
type Cache interface {
	Get(eurekaName string) (*ProjectMapping, bool)
	Add(mapping *ProjectMapping)
	Invalidate(eurekaName string)
}

// ProjectMappingPatch carries the optional fields of an update.
type ProjectMappingPatch struct {
	UploadName  *string
	EurekaName  *string
	Name        *string
	Description *string
}

func NewProjectMapping(eurekaName, uploadName, name, description string) *ProjectMapping {
	now := time.Now().UTC()
	return &ProjectMapping{
		EurekaName:  eurekaName,
		UploadName:  uploadName,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
