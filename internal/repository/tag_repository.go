package repository

import (
	"context"
	"fmt"
	"time"

	"noteful/backend/internal/model"
	"noteful/backend/internal/snowflake"
)

type TagRepository interface {
	Create(ctx context.Context, name string) (model.Tag, error)
	GetByID(ctx context.Context, id int64) (model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	Update(ctx context.Context, id int64, name string) (model.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type tagRepository struct {
	db dbtx
}

func NewTagRepository(db dbtx) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, name string) (model.Tag, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO tags (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id,
		name,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Tag{}, fmt.Errorf("create tag %q: %w", name, ErrDuplicate)
		}
		return model.Tag{}, fmt.Errorf("create tag: %w", err)
	}

	return model.Tag{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (model.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at, updated_at FROM tags WHERE id = ?`, id)

	var tag model.Tag
	var createdAt string
	var updatedAt string
	if err := row.Scan(&tag.ID, &tag.Name, &createdAt, &updatedAt); err != nil {
		return model.Tag{}, fmt.Errorf("get tag: %w", err)
	}
	var err error
	tag.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Tag{}, fmt.Errorf("parse tag created_at: %w", err)
	}
	tag.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Tag{}, fmt.Errorf("parse tag updated_at: %w", err)
	}

	return tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		var createdAt string
		var updatedAt string
		if err := rows.Scan(&tag.ID, &tag.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tag.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse tag created_at: %w", err)
		}
		tag.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse tag updated_at: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, id int64, name string) (model.Tag, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE tags SET name = ?, updated_at = ? WHERE id = ?`,
		name,
		formatTime(now),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Tag{}, fmt.Errorf("update tag %q: %w", name, ErrDuplicate)
		}
		return model.Tag{}, fmt.Errorf("update tag: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete is idempotent: deleting an id with no matching row is not an
// error.
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
