package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"noteful/backend/internal/model"
	"noteful/backend/internal/repository"
)

type TagService interface {
	List(ctx context.Context) ([]model.Tag, error)
	Get(ctx context.Context, id int64) (model.Tag, error)
	Create(ctx context.Context, name string) (model.Tag, error)
	Update(ctx context.Context, id int64, name string) (model.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type tagService struct {
	tags  repository.TagRepository
	notes repository.NoteRepository
}

func NewTagService(tags repository.TagRepository, notes repository.NoteRepository) TagService {
	return &tagService{tags: tags, notes: notes}
}

func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Get(ctx context.Context, id int64) (model.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Tag{}, NotFound("tag not found")
		}
		return model.Tag{}, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, name string) (model.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Tag{}, Invalid("need name")
	}

	tag, err := s.tags.Create(ctx, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Tag{}, Conflict("tag name exists")
		}
		return model.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, id int64, name string) (model.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Tag{}, Invalid("need name")
	}
	if _, err := s.tags.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Tag{}, NotFound("tag not found")
		}
		return model.Tag{}, fmt.Errorf("get tag: %w", err)
	}

	tag, err := s.tags.Update(ctx, id, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Tag{}, Conflict("tag name exists")
		}
		return model.Tag{}, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Delete removes the tag row and pulls the tag's id out of every note
// referencing it. The two operations run concurrently and both must
// succeed; there is no rollback of whichever one completed, so a failure
// can leave the store inconsistent until the delete is retried.
func (s *tagService) Delete(ctx context.Context, id int64) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.tags.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.notes.RemoveTagFromNotes(ctx, id); err != nil {
			return &CascadeError{TagID: id, Err: err}
		}
		return nil
	})

	return g.Wait()
}
