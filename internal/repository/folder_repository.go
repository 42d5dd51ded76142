package repository

import (
	"context"
	"fmt"
	"time"

	"noteful/backend/internal/model"
	"noteful/backend/internal/snowflake"
)

type FolderRepository interface {
	Create(ctx context.Context, name string) (model.Folder, error)
	GetByID(ctx context.Context, id int64) (model.Folder, error)
	List(ctx context.Context) ([]model.Folder, error)
	Update(ctx context.Context, id int64, name string) (model.Folder, error)
	Delete(ctx context.Context, id int64) error
}

type folderRepository struct {
	db dbtx
}

func NewFolderRepository(db dbtx) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, name string) (model.Folder, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO folders (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id,
		name,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Folder{}, fmt.Errorf("create folder %q: %w", name, ErrDuplicate)
		}
		return model.Folder{}, fmt.Errorf("create folder: %w", err)
	}

	return model.Folder{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *folderRepository) GetByID(ctx context.Context, id int64) (model.Folder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at, updated_at FROM folders WHERE id = ?`, id)

	var folder model.Folder
	var createdAt string
	var updatedAt string
	if err := row.Scan(&folder.ID, &folder.Name, &createdAt, &updatedAt); err != nil {
		return model.Folder{}, fmt.Errorf("get folder: %w", err)
	}
	var err error
	folder.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Folder{}, fmt.Errorf("parse folder created_at: %w", err)
	}
	folder.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Folder{}, fmt.Errorf("parse folder updated_at: %w", err)
	}

	return folder, nil
}

func (r *folderRepository) List(ctx context.Context) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM folders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var folder model.Folder
		var createdAt string
		var updatedAt string
		if err := rows.Scan(&folder.ID, &folder.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folder.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse folder created_at: %w", err)
		}
		folder.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse folder updated_at: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

func (r *folderRepository) Update(ctx context.Context, id int64, name string) (model.Folder, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE folders SET name = ?, updated_at = ? WHERE id = ?`,
		name,
		formatTime(now),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Folder{}, fmt.Errorf("update folder %q: %w", name, ErrDuplicate)
		}
		return model.Folder{}, fmt.Errorf("update folder: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete is idempotent: deleting an id with no matching row is not an
// error.
func (r *folderRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}
