package projectmapping

import (
	"context"
	"strings"
	"sync"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

// ProjectMappingService owns the alias table and the lookup cache the collector reads through.
type ProjectMappingService struct {
	repo  ProjectMappingRepository
	cache Cache

	// serializes lookup-or-create so one process never inserts the same eureka name twice
	resolveMu sync.Mutex
}

func NewProjectMappingService(repo ProjectMappingRepository, cache Cache) *ProjectMappingService {
	return &ProjectMappingService{
		repo:  repo,
		cache: cache,
	}
}

// NormalizeEurekaName is the key form used for lookups.
func NormalizeEurekaName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveByEurekaName returns the mapping for name, creating an empty one the first time the name is seen.
// The boolean reports whether a row was created.
func (s *ProjectMappingService) ResolveByEurekaName(ctx context.Context, name string) (*ProjectMapping, bool, error) {
	key := NormalizeEurekaName(name)
	if key == "" {
		return nil, false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "service name is empty", nil, "mapping-resolve-001")
	}
	if cached, ok := s.cache.Get(key); ok {
		return cached, false, nil
	}

	s.resolveMu.Lock()
	defer s.resolveMu.Unlock()

	if cached, ok := s.cache.Get(key); ok {
		return cached, false, nil
	}

	existing, err := s.repo.FindOneByEurekaName(ctx, key)
	if err == nil {
		s.cache.Add(existing)
		return existing, false, nil
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up project mapping")
	}

	created := NewProjectMapping(key, "", "", "")
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create project mapping")
	}
	s.cache.Add(created)
	return created, true, nil
}

func (s *ProjectMappingService) CreateProjectMapping(ctx context.Context, mapping *ProjectMapping) (*ProjectMapping, error) {
	mapping.EurekaName = NormalizeEurekaName(mapping.EurekaName)
	if mapping.EurekaName == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "eureka_name is required", nil, "mapping-create-001")
	}

	if _, err := s.repo.FindOneByEurekaName(ctx, mapping.EurekaName); err == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "a project mapping with this eureka_name already exists", nil, "mapping-create-002")
	} else if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check project mapping")
	}

	if err := s.repo.Create(ctx, mapping); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create project mapping")
	}
	s.cache.Invalidate(mapping.EurekaName)
	return mapping, nil
}

func (s *ProjectMappingService) GetProjectMapping(ctx context.Context, id uint) (*ProjectMapping, error) {
	mapping, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "project mapping not found")
	}
	return mapping, nil
}

func (s *ProjectMappingService) ListProjectMappings(ctx context.Context, filter ProjectMappingFilter, pagination *query.Pagination) ([]*ProjectMapping, int64, error) {
	mappings, total, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list project mappings")
	}
	return mappings, total, nil
}

// UpdateProjectMapping applies patch and drops the cache entries for both the old and new eureka name.
func (s *ProjectMappingService) UpdateProjectMapping(ctx context.Context, id uint, patch ProjectMappingPatch) (*ProjectMapping, error) {
	mapping, err := s.GetProjectMapping(ctx, id)
	if err != nil {
		return nil, err
	}
	previousKey := mapping.EurekaName

	if patch.EurekaName != nil {
		key := NormalizeEurekaName(*patch.EurekaName)
		if key == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "eureka_name cannot be empty", nil, "mapping-update-001")
		}
		if key != previousKey {
			if other, err := s.repo.FindOneByEurekaName(ctx, key); err == nil && other.ID != id {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "a project mapping with this eureka_name already exists", nil, "mapping-update-002")
			}
		}
		mapping.EurekaName = key
	}
	if patch.UploadName != nil {
		mapping.UploadName = strings.TrimSpace(*patch.UploadName)
	}
	if patch.Name != nil {
		mapping.Name = *patch.Name
	}
	if patch.Description != nil {
		mapping.Description = *patch.Description
	}

	if err := s.repo.Update(ctx, mapping); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update project mapping")
	}
	s.cache.Invalidate(previousKey)
	s.cache.Invalidate(mapping.EurekaName)
	return mapping, nil
}

func (s *ProjectMappingService) DeleteProjectMapping(ctx context.Context, id uint) error {
	mapping, err := s.GetProjectMapping(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete project mapping")
	}
	s.cache.Invalidate(mapping.EurekaName)
	return nil
}
