package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"noteful/backend/internal/repository"
	"noteful/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestTagRepository_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTagRepository(db)
	ctx := context.Background()

	tag, err := repo.Create(ctx, "urgent")
	require.NoError(t, err)
	require.NotZero(t, tag.ID)

	fetched, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	require.Equal(t, "urgent", fetched.Name)

	updated, err := repo.Update(ctx, tag.ID, "important")
	require.NoError(t, err)
	require.Equal(t, "important", updated.Name)

	require.NoError(t, repo.Delete(ctx, tag.ID))
	_, err = repo.GetByID(ctx, tag.ID)
	require.ErrorIs(t, err, sql.ErrNoRows)

	// Idempotent delete
	require.NoError(t, repo.Delete(ctx, tag.ID))
}

func TestTagRepository_DuplicateName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTagRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "urgent")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "urgent")
	require.ErrorIs(t, err, repository.ErrDuplicate)

	other, err := repo.Create(ctx, "later")
	require.NoError(t, err)
	_, err = repo.Update(ctx, other.ID, "urgent")
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestTagRepository_List_OrderedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewTagRepository(db)
	ctx := context.Background()

	testutil.SeedTag(t, db, "work")
	testutil.SeedTag(t, db, "idea")
	testutil.SeedTag(t, db, "urgent")

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	require.Equal(t, "idea", tags[0].Name)
	require.Equal(t, "urgent", tags[1].Name)
	require.Equal(t, "work", tags[2].Name)
}
