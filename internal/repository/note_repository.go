package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"noteful/backend/internal/model"
	"noteful/backend/internal/snowflake"
)

// NoteListFilter composes the note search. SearchTerm matches title OR
// content as a case-insensitive substring; FolderID narrows the result
// to one folder. Both absent means every note matches.
type NoteListFilter struct {
	SearchTerm *string
	FolderID   *int64
}

// NoteUpdate carries a merge-update: nil fields are left untouched.
// A non-nil TagIDs replaces the note's whole tag set.
type NoteUpdate struct {
	Title    *string
	Content  *string
	FolderID *int64
	TagIDs   []int64
}

type NoteRepository interface {
	Create(ctx context.Context, note model.Note) (model.Note, error)
	GetByID(ctx context.Context, id int64) (model.Note, error)
	List(ctx context.Context, filter NoteListFilter) ([]model.Note, error)
	Update(ctx context.Context, id int64, update NoteUpdate) (model.Note, error)
	Delete(ctx context.Context, id int64) error
	RemoveTagFromNotes(ctx context.Context, tagID int64) error
}

type noteRepository struct {
	db dbtx
}

func NewNoteRepository(db dbtx) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	note.ID = snowflake.NextID()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO notes (id, title, content, folder_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.Title,
		nullableString(note.Content),
		nullableInt64(note.FolderID),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}

	if err := r.insertTagRefs(ctx, note.ID, note.TagIDs); err != nil {
		return model.Note{}, err
	}

	return r.GetByID(ctx, note.ID)
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, title, content, folder_id, created_at, updated_at FROM notes WHERE id = ?`,
		id,
	)
	note, err := scanNote(row)
	if err != nil {
		return model.Note{}, err
	}

	note.TagIDs, err = r.tagRefs(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

func (r *noteRepository) List(ctx context.Context, filter NoteListFilter) ([]model.Note, error) {
	var args []interface{}
	query := `SELECT id, title, content, folder_id, created_at, updated_at FROM notes`

	var conditions []string

	if filter.SearchTerm != nil {
		pattern := "%" + escapeLike(*filter.SearchTerm) + "%"
		conditions = append(conditions, `(title LIKE ? ESCAPE '\' OR IFNULL(content, '') LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	if filter.FolderID != nil {
		conditions = append(conditions, "folder_id = ?")
		args = append(args, *filter.FolderID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Insertion order. Snowflake IDs break ties within a second.
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	if err := r.attachTagRefs(ctx, notes); err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, id int64, update NoteUpdate) (model.Note, error) {
	now := time.Now().UTC()

	var sets []string
	var args []interface{}
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *update.Content)
	}
	if update.FolderID != nil {
		sets = append(sets, "folder_id = ?")
		args = append(args, *update.FolderID)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(now))
	args = append(args, id)

	query := "UPDATE notes SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}

	if update.TagIDs != nil {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id); err != nil {
			return model.Note{}, fmt.Errorf("clear note tags: %w", err)
		}
		if err := r.insertTagRefs(ctx, id, update.TagIDs); err != nil {
			return model.Note{}, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete is idempotent: deleting an id with no matching row is not an
// error.
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id); err != nil {
		return fmt.Errorf("delete note tag refs: %w", err)
	}
	return nil
}

// RemoveTagFromNotes pulls a single tag reference out of every note that
// carries it, leaving the notes' other tags in place.
func (r *noteRepository) RemoveTagFromNotes(ctx context.Context, tagID int64) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE notes SET updated_at = ? WHERE id IN (SELECT note_id FROM note_tags WHERE tag_id = ?)`,
		formatTime(time.Now().UTC()),
		tagID,
	)
	if err != nil {
		return fmt.Errorf("touch notes for tag %d: %w", tagID, err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM note_tags WHERE tag_id = ?`, tagID); err != nil {
		return fmt.Errorf("remove tag %d from notes: %w", tagID, err)
	}
	return nil
}

func (r *noteRepository) insertTagRefs(ctx context.Context, noteID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		_, err := r.db.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
			noteID,
			tagID,
		)
		if err != nil {
			return fmt.Errorf("insert note tag ref: %w", err)
		}
	}
	return nil
}

func (r *noteRepository) tagRefs(ctx context.Context, noteID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag_id FROM note_tags WHERE note_id = ? ORDER BY tag_id`, noteID)
	if err != nil {
		return nil, fmt.Errorf("list note tag refs: %w", err)
	}
	defer rows.Close()

	var tagIDs []int64
	for rows.Next() {
		var tagID int64
		if err := rows.Scan(&tagID); err != nil {
			return nil, fmt.Errorf("scan note tag ref: %w", err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate note tag refs: %w", err)
	}

	return tagIDs, nil
}

func (r *noteRepository) attachTagRefs(ctx context.Context, notes []model.Note) error {
	if len(notes) == 0 {
		return nil
	}

	placeholders := make([]string, len(notes))
	args := make([]interface{}, len(notes))
	byID := make(map[int64]*model.Note, len(notes))
	for i := range notes {
		placeholders[i] = "?"
		args[i] = notes[i].ID
		byID[notes[i].ID] = &notes[i]
	}

	query := `SELECT note_id, tag_id FROM note_tags WHERE note_id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY tag_id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list note tag refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteID, tagID int64
		if err := rows.Scan(&noteID, &tagID); err != nil {
			return fmt.Errorf("scan note tag ref: %w", err)
		}
		if note, ok := byID[noteID]; ok {
			note.TagIDs = append(note.TagIDs, tagID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate note tag refs: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (model.Note, error) {
	var note model.Note
	var content *string
	var folderID *int64
	var createdAt string
	var updatedAt string
	if err := row.Scan(&note.ID, &note.Title, &content, &folderID, &createdAt, &updatedAt); err != nil {
		return model.Note{}, fmt.Errorf("scan note: %w", err)
	}
	note.Content = content
	note.FolderID = folderID

	var err error
	note.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Note{}, fmt.Errorf("parse note created_at: %w", err)
	}
	note.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Note{}, fmt.Errorf("parse note updated_at: %w", err)
	}

	return note, nil
}

// escapeLike backslash-escapes the LIKE wildcards so a search term is
// always matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
