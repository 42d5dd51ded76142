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

type NoteListParams struct {
	SearchTerm *string
	FolderID   *int64
}

type NoteCreateParams struct {
	Title    string
	Content  *string
	FolderID *int64
	TagIDs   []int64
}

// NoteUpdateParams is a merge-update: nil fields keep the note's current
// value. Title is the exception, it is required on every update.
type NoteUpdateParams struct {
	Title    *string
	Content  *string
	FolderID *int64
	TagIDs   []int64
}

type NoteService interface {
	List(ctx context.Context, params NoteListParams) ([]model.Note, error)
	Get(ctx context.Context, id int64) (model.Note, error)
	Create(ctx context.Context, params NoteCreateParams) (model.Note, error)
	Update(ctx context.Context, id int64, params NoteUpdateParams) (model.Note, error)
	Delete(ctx context.Context, id int64) error
}

type noteService struct {
	notes repository.NoteRepository
}

func NewNoteService(notes repository.NoteRepository) NoteService {
	return &noteService{notes: notes}
}

func (s *noteService) List(ctx context.Context, params NoteListParams) ([]model.Note, error) {
	return s.notes.List(ctx, repository.NoteListFilter{
		SearchTerm: params.SearchTerm,
		FolderID:   params.FolderID,
	})
}

func (s *noteService) Get(ctx context.Context, id int64) (model.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, NotFound("note not found")
		}
		return model.Note{}, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func (s *noteService) Create(ctx context.Context, params NoteCreateParams) (model.Note, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.Note{}, Invalid("You need a title")
	}

	note, err := s.notes.Create(ctx, model.Note{
		Title:    title,
		Content:  params.Content,
		FolderID: params.FolderID,
		TagIDs:   params.TagIDs,
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, id int64, params NoteUpdateParams) (model.Note, error) {
	if params.Title == nil || strings.TrimSpace(*params.Title) == "" {
		return model.Note{}, Invalid("You need a title")
	}
	title := strings.TrimSpace(*params.Title)

	if _, err := s.notes.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, NotFound("note not found")
		}
		return model.Note{}, fmt.Errorf("get note: %w", err)
	}

	note, err := s.notes.Update(ctx, id, repository.NoteUpdate{
		Title:    &title,
		Content:  params.Content,
		FolderID: params.FolderID,
		TagIDs:   params.TagIDs,
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id int64) error {
	return s.notes.Delete(ctx, id)
}
