package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"noteful/backend/internal/model"
	"noteful/backend/internal/repository"
	"noteful/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func TestNoteRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Work")
	tagID := testutil.SeedTag(t, db, "urgent")

	note, err := repo.Create(ctx, model.Note{
		Title:    "Standup notes",
		Content:  stringPtr("Discuss roadmap"),
		FolderID: &folderID,
		TagIDs:   []int64{tagID},
	})
	require.NoError(t, err)
	require.NotZero(t, note.ID)
	require.Equal(t, "Standup notes", note.Title)
	require.Equal(t, "Discuss roadmap", *note.Content)
	require.Equal(t, folderID, *note.FolderID)
	require.Equal(t, []int64{tagID}, note.TagIDs)

	fetched, err := repo.GetByID(ctx, note.ID)
	require.NoError(t, err)
	require.Equal(t, note.ID, fetched.ID)
	require.Equal(t, []int64{tagID}, fetched.TagIDs)
}

func TestNoteRepository_Create_Minimal(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	note, err := repo.Create(ctx, model.Note{Title: "T"})
	require.NoError(t, err)
	require.Nil(t, note.Content)
	require.Nil(t, note.FolderID)
	require.Empty(t, note.TagIDs)
}

func TestNoteRepository_List_SearchTerm(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	testutil.SeedNote(t, db, "Cats are great", nil, nil)
	testutil.SeedNote(t, db, "Dogs", stringPtr("better than CATS, arguably"), nil)
	testutil.SeedNote(t, db, "Groceries", stringPtr("milk, eggs"), nil)

	// Case-insensitive match against title OR content
	notes, err := repo.List(ctx, repository.NoteListFilter{SearchTerm: stringPtr("cats")})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "Cats are great", notes[0].Title)
	require.Equal(t, "Dogs", notes[1].Title)

	// No match
	notes, err = repo.List(ctx, repository.NoteListFilter{SearchTerm: stringPtr("birds")})
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestNoteRepository_List_SearchTermLiteralWildcards(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	testutil.SeedNote(t, db, "100% done", nil, nil)
	testutil.SeedNote(t, db, "100 done", nil, nil)

	notes, err := repo.List(ctx, repository.NoteListFilter{SearchTerm: stringPtr("100%")})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "100% done", notes[0].Title)
}

func TestNoteRepository_List_FolderFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Work")
	otherID := testutil.SeedFolder(t, db, "Personal")

	testutil.SeedNote(t, db, "Cats at work", nil, &folderID)
	testutil.SeedNote(t, db, "Cats at home", nil, &otherID)
	testutil.SeedNote(t, db, "Unfiled cats", nil, nil)

	notes, err := repo.List(ctx, repository.NoteListFilter{FolderID: &folderID})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "Cats at work", notes[0].Title)

	// Search term AND folder intersect
	notes, err = repo.List(ctx, repository.NoteListFilter{
		SearchTerm: stringPtr("cats"),
		FolderID:   &otherID,
	})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "Cats at home", notes[0].Title)
}

func TestNoteRepository_List_NoFilterReturnsAllInInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	testutil.SeedNote(t, db, "first", nil, nil)
	testutil.SeedNote(t, db, "second", nil, nil)
	testutil.SeedNote(t, db, "third", nil, nil)

	notes, err := repo.List(ctx, repository.NoteListFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	require.Equal(t, "first", notes[0].Title)
	require.Equal(t, "second", notes[1].Title)
	require.Equal(t, "third", notes[2].Title)
}

func TestNoteRepository_Update_MergeSemantics(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Work")
	tagID := testutil.SeedTag(t, db, "urgent")
	noteID := testutil.SeedNote(t, db, "Title", stringPtr("old content"), &folderID, tagID)

	// Updating only content leaves folder and tags untouched
	updated, err := repo.Update(ctx, noteID, repository.NoteUpdate{
		Content: stringPtr("new content"),
	})
	require.NoError(t, err)
	require.Equal(t, "Title", updated.Title)
	require.Equal(t, "new content", *updated.Content)
	require.Equal(t, folderID, *updated.FolderID)
	require.Equal(t, []int64{tagID}, updated.TagIDs)

	// A non-nil tag list replaces the whole set
	otherTag := testutil.SeedTag(t, db, "later")
	updated, err = repo.Update(ctx, noteID, repository.NoteUpdate{
		TagIDs: []int64{otherTag},
	})
	require.NoError(t, err)
	require.Equal(t, []int64{otherTag}, updated.TagIDs)

	// An explicit empty list clears it
	updated, err = repo.Update(ctx, noteID, repository.NoteUpdate{TagIDs: []int64{}})
	require.NoError(t, err)
	require.Empty(t, updated.TagIDs)
}

func TestNoteRepository_Delete_RemovesTagRefs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	tagID := testutil.SeedTag(t, db, "urgent")
	noteID := testutil.SeedNote(t, db, "Title", nil, nil, tagID)

	require.NoError(t, repo.Delete(ctx, noteID))

	_, err := repo.GetByID(ctx, noteID)
	require.ErrorIs(t, err, sql.ErrNoRows)

	var refs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM note_tags WHERE note_id = ?`, noteID).Scan(&refs))
	require.Zero(t, refs)

	// Idempotent
	require.NoError(t, repo.Delete(ctx, noteID))
}

func TestNoteRepository_RemoveTagFromNotes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	urgent := testutil.SeedTag(t, db, "urgent")
	keep := testutil.SeedTag(t, db, "keep")
	noteA := testutil.SeedNote(t, db, "A", nil, nil, urgent, keep)
	noteB := testutil.SeedNote(t, db, "B", nil, nil, urgent)
	noteC := testutil.SeedNote(t, db, "C", nil, nil, keep)

	require.NoError(t, repo.RemoveTagFromNotes(ctx, urgent))

	a, err := repo.GetByID(ctx, noteA)
	require.NoError(t, err)
	require.Equal(t, []int64{keep}, a.TagIDs)

	b, err := repo.GetByID(ctx, noteB)
	require.NoError(t, err)
	require.Empty(t, b.TagIDs)

	c, err := repo.GetByID(ctx, noteC)
	require.NoError(t, err)
	require.Equal(t, []int64{keep}, c.TagIDs)
}

func TestNoteRepository_RemoveTagFromNotes_Unreferenced(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	tagID := testutil.SeedTag(t, db, "unused")
	noteID := testutil.SeedNote(t, db, "A", nil, nil)

	require.NoError(t, repo.RemoveTagFromNotes(ctx, tagID))

	note, err := repo.GetByID(ctx, noteID)
	require.NoError(t, err)
	require.Empty(t, note.TagIDs)
}
