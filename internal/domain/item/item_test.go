package item

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type memoryItems struct {
	items map[uuid.UUID]*Item
}

func (m *memoryItems) Create(_ context.Context, it *Item) error {
	m.items[it.ID] = it
	return nil
}

func (m *memoryItems) FindByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "item not found", nil, "")
	}
	return it, nil
}

func (m *memoryItems) FindByFilter(_ context.Context, filter ItemFilter, _ *query.Pagination) ([]*Item, int64, error) {
	var out []*Item
	for _, it := range m.items {
		if filter.OwnerID != nil && it.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, it)
	}
	return out, int64(len(out)), nil
}

func (m *memoryItems) Update(_ context.Context, it *Item) error {
	m.items[it.ID] = it
	return nil
}

func (m *memoryItems) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *memoryItems) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	for id, it := range m.items {
		if it.OwnerID == ownerID {
			delete(m.items, id)
		}
	}
	return nil
}

func TestItemOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(&memoryItems{items: map[uuid.UUID]*Item{}})
	owner := Actor{UserID: uuid.New()}
	stranger := Actor{UserID: uuid.New()}
	admin := Actor{UserID: uuid.New(), IsSuperuser: true}

	created, err := svc.CreateItem(ctx, owner, ItemCreate{Title: " report "})
	require.NoError(t, err)
	assert.Equal(t, "report", created.Title)
	assert.Equal(t, owner.UserID, created.OwnerID)

	_, err = svc.GetItem(ctx, stranger, created.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	title := "renamed"
	_, err = svc.UpdateItem(ctx, stranger, created.ID, ItemPatch{Title: &title})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	err = svc.DeleteItem(ctx, stranger, created.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	updated, err := svc.UpdateItem(ctx, admin, created.ID, ItemPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	_, err = svc.GetItem(ctx, owner, uuid.New())
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestListItemsScopesToOwner(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(&memoryItems{items: map[uuid.UUID]*Item{}})
	alice := Actor{UserID: uuid.New()}
	bob := Actor{UserID: uuid.New()}

	_, err := svc.CreateItem(ctx, alice, ItemCreate{Title: "a"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, bob, ItemCreate{Title: "b"})
	require.NoError(t, err)

	_, total, err := svc.ListItems(ctx, alice, query.NewPagePagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.ListItems(ctx, Actor{UserID: uuid.New(), IsSuperuser: true}, query.NewPagePagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = svc.CreateItem(ctx, alice, ItemCreate{Title: "  "})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestUpdateItemRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(&memoryItems{items: map[uuid.UUID]*Item{}})
	owner := Actor{UserID: uuid.New()}

	created, err := svc.CreateItem(ctx, owner, ItemCreate{Title: "report"})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.UpdateItem(ctx, owner, created.ID, ItemPatch{Title: &blank})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	stored, err := svc.GetItem(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "report", stored.Title)

	padded := "  weekly  "
	updated, err := svc.UpdateItem(ctx, owner, created.ID, ItemPatch{Title: &padded})
	require.NoError(t, err)
	assert.Equal(t, "weekly", updated.Title)
}
