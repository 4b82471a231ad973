package userrepo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/domain/item"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/role"
	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/databasetest"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/itemrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/rolerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/userrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

func newUser(email string) *user.User {
	return &user.User{
		ID:             uuid.New(),
		Email:          email,
		IsActive:       true,
		HashedPassword: "hash",
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := transaction.NewDatabase(databasetest.New(t))
	repo := userrepo.NewUserGormRepository(db)

	u := newUser("alice@example.com")
	require.NoError(t, repo.Create(ctx, u))
	assert.False(t, u.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "Alice@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.True(t, found.IsActive)
	assert.False(t, found.IsSuperuser)

	found.IsActive = false
	name := "Alice"
	found.FullName = &name
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
	require.NotNil(t, reloaded.FullName)
	assert.Equal(t, "Alice", *reloaded.FullName)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.FindByID(ctx, u.ID)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestUserRepository_FindByFilter(t *testing.T) {
	ctx := context.Background()
	db := transaction.NewDatabase(databasetest.New(t))
	repo := userrepo.NewUserGormRepository(db)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, repo.Create(ctx, newUser(email)))
	}
	admin := newUser("root@example.com")
	admin.IsSuperuser = true
	require.NoError(t, repo.Create(ctx, admin))

	all, total, err := repo.FindByFilter(ctx, user.UserFilter{}, query.NewPagePagination(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 2)

	super := true
	supers, total, err := repo.FindByFilter(ctx, user.UserFilter{IsSuperuser: &super}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "root@example.com", supers[0].Email)
}

func TestRoleDelete_DetachesUsers(t *testing.T) {
	ctx := context.Background()
	db := transaction.NewDatabase(databasetest.New(t))
	users := userrepo.NewUserGormRepository(db)
	roles := rolerepo.NewRoleGormRepository(db)

	r := &role.Role{ID: uuid.New(), Name: "admin"}
	require.NoError(t, roles.Create(ctx, r))

	byName, err := roles.FindByName(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, r.ID, byName.ID)

	u := newUser("bob@example.com")
	u.RoleID = &r.ID
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, roles.Delete(ctx, r.ID))

	reloaded, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.RoleID)

	_, err = roles.FindByID(ctx, r.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestItemRepository_DeleteByOwner(t *testing.T) {
	ctx := context.Background()
	db := transaction.NewDatabase(databasetest.New(t))
	items := itemrepo.NewItemGormRepository(db)

	owner, other := uuid.New(), uuid.New()
	for _, o := range []uuid.UUID{owner, owner, other} {
		require.NoError(t, items.Create(ctx, &item.Item{ID: uuid.New(), Title: "t", OwnerID: o}))
	}

	owned, total, err := items.FindByFilter(ctx, item.ItemFilter{OwnerID: &owner}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, owned, 2)

	require.NoError(t, items.DeleteByOwner(ctx, owner))

	_, total, err = items.FindByFilter(ctx, item.ItemFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
