package ignore

import (
	"context"
	"strings"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type IgnoreService struct {
	repo IgnoreRepository
}

func NewIgnoreService(repo IgnoreRepository) *IgnoreService {
	return &IgnoreService{repo: repo}
}

// IgnorePatch carries the optional fields of an update.
type IgnorePatch struct {
	URI         *string
	Description *string
}

func (s *IgnoreService) CreateIgnore(ctx context.Context, uri, description string) (*IgnoreInterface, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "uri is required", nil, "ignore-create-001")
	}
	rule := &IgnoreInterface{URI: uri, Description: description}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create ignore rule")
	}
	return rule, nil
}

func (s *IgnoreService) GetIgnore(ctx context.Context, id uint) (*IgnoreInterface, error) {
	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "ignore rule not found")
	}
	return rule, nil
}

func (s *IgnoreService) ListIgnores(ctx context.Context, filter IgnoreFilter, pagination *query.Pagination) ([]*IgnoreInterface, int64, error) {
	rules, total, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list ignore rules")
	}
	return rules, total, nil
}

func (s *IgnoreService) UpdateIgnore(ctx context.Context, id uint, patch IgnorePatch) (*IgnoreInterface, error) {
	rule, err := s.GetIgnore(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.URI != nil {
		uri := strings.TrimSpace(*patch.URI)
		if uri == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "uri cannot be empty", nil, "ignore-update-001")
		}
		rule.URI = uri
	}
	if patch.Description != nil {
		rule.Description = *patch.Description
	}
	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update ignore rule")
	}
	return rule, nil
}

func (s *IgnoreService) DeleteIgnore(ctx context.Context, id uint) error {
	if _, err := s.GetIgnore(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete ignore rule")
	}
	return nil
}

// LoadMatcher reads the whole ignore list once.
func (s *IgnoreService) LoadMatcher(ctx context.Context) (*Matcher, error) {
	rules, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load ignore list")
	}
	return NewMatcher(rules), nil
}
