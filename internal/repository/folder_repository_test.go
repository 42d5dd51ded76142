package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"noteful/backend/internal/repository"
	"noteful/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestFolderRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFolderRepository(db)
	ctx := context.Background()

	folder, err := repo.Create(ctx, "Work")
	require.NoError(t, err)
	require.NotZero(t, folder.ID)
	require.Equal(t, "Work", folder.Name)
	require.False(t, folder.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, folder.ID)
	require.NoError(t, err)
	require.Equal(t, folder.ID, fetched.ID)
	require.Equal(t, "Work", fetched.Name)
}

func TestFolderRepository_GetByID_Missing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFolderRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	require.Error(t, err)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestFolderRepository_Create_DuplicateName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFolderRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Work")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Work")
	require.Error(t, err)
	require.True(t, errors.Is(err, repository.ErrDuplicate))
}

func TestFolderRepository_List_OrderedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFolderRepository(db)
	ctx := context.Background()

	testutil.SeedFolder(t, db, "Personal")
	testutil.SeedFolder(t, db, "Archive")
	testutil.SeedFolder(t, db, "Work")

	folders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 3)
	require.Equal(t, "Archive", folders[0].Name)
	require.Equal(t, "Personal", folders[1].Name)
	require.Equal(t, "Work", folders[2].Name)
}

func TestFolderRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFolderRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Work")
	testutil.SeedFolder(t, db, "Personal")

	updated, err := repo.Update(ctx, folderID, "Projects")
	require.NoError(t, err)
	require.Equal(t, "Projects", updated.Name)

	// Renaming onto an existing name hits the unique constraint
	_, err = repo.Update(ctx, folderID, "Personal")
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestFolderRepository_Delete_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewFolderRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Work")

	require.NoError(t, repo.Delete(ctx, folderID))
	require.NoError(t, repo.Delete(ctx, folderID))
	require.NoError(t, repo.Delete(ctx, 99999))
}
