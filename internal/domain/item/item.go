package item

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type Item struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Actor is the caller an item operation runs on behalf of.
type Actor struct {
	UserID      uuid.UUID
	IsSuperuser bool
}

func (a Actor) canAccess(it *Item) bool {
	return a.IsSuperuser || it.OwnerID == a.UserID
}

type ItemCreate struct {
	Title       string  `validate:"required,min=1,max=255"`
	Description *string `validate:"omitempty,max=255"`
}

type ItemPatch struct {
	Title       *string `validate:"omitempty,min=1,max=255"`
	Description *string `validate:"omitempty,max=255"`
}

type ItemFilter struct {
	OwnerID *uuid.UUID
}

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByFilter(ctx context.Context, filter ItemFilter, pagination *query.Pagination) ([]*Item, int64, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type ItemService struct {
	repo     ItemRepository
	validate *validator.Validate
}

func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func forbidden(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "not enough permissions", nil, "item-access-001")
}

func (s *ItemService) CreateItem(ctx context.Context, actor Actor, in ItemCreate) (*Item, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(in); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "item validation failed", err, "item-create-001")
	}
	it := &Item{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     actor.UserID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create item")
	}
	return it, nil
}

// GetItem returns the item when actor owns it or is a superuser.
func (s *ItemService) GetItem(ctx context.Context, actor Actor, id uuid.UUID) (*Item, error) {
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "item not found")
	}
	if !actor.canAccess(it) {
		return nil, forbidden(ctx)
	}
	return it, nil
}

// ListItems lists every item for a superuser and only owned items otherwise.
func (s *ItemService) ListItems(ctx context.Context, actor Actor, pagination *query.Pagination) ([]*Item, int64, error) {
	filter := ItemFilter{}
	if !actor.IsSuperuser {
		owner := actor.UserID
		filter.OwnerID = &owner
	}
	items, total, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list items")
	}
	return items, total, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, actor Actor, id uuid.UUID, patch ItemPatch) (*Item, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "item validation failed", err, "item-update-001")
	}
	it, err := s.GetItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		it.Title = *patch.Title
	}
	if patch.Description != nil {
		it.Description = patch.Description
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update item")
	}
	return it, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete item")
	}
	return nil
}
