package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"noteful/backend/internal/model"
	"noteful/backend/internal/repository"
)

type FolderService interface {
	List(ctx context.Context) ([]model.Folder, error)
	Get(ctx context.Context, id int64) (model.Folder, error)
	Create(ctx context.Context, name string) (model.Folder, error)
	Update(ctx context.Context, id int64, name string) (model.Folder, error)
	Delete(ctx context.Context, id int64) error
}

type folderService struct {
	folders repository.FolderRepository
}

func NewFolderService(folders repository.FolderRepository) FolderService {
	return &folderService{folders: folders}
}

func (s *folderService) List(ctx context.Context) ([]model.Folder, error) {
	return s.folders.List(ctx)
}

func (s *folderService) Get(ctx context.Context, id int64) (model.Folder, error) {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Folder{}, NotFound("folder not found")
		}
		return model.Folder{}, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

func (s *folderService) Create(ctx context.Context, name string) (model.Folder, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Folder{}, Invalid("need name")
	}

	folder, err := s.folders.Create(ctx, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Folder{}, Conflict("folder name exists")
		}
		return model.Folder{}, fmt.Errorf("create folder: %w", err)
	}
	return folder, nil
}

func (s *folderService) Update(ctx context.Context, id int64, name string) (model.Folder, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Folder{}, Invalid("need name")
	}
	if _, err := s.folders.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Folder{}, NotFound("folder not found")
		}
		return model.Folder{}, fmt.Errorf("get folder: %w", err)
	}

	folder, err := s.folders.Update(ctx, id, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Folder{}, Conflict("folder name exists")
		}
		return model.Folder{}, fmt.Errorf("update folder: %w", err)
	}
	return folder, nil
}

// Delete removes the folder only. Notes keep their folder reference;
// a dangling folder id on a note is tolerated.
func (s *folderService) Delete(ctx context.Context, id int64) error {
	return s.folders.Delete(ctx, id)
}
