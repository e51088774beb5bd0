// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
	"github.com/taibuivan/anicat/internal/platform/events"
	"github.com/taibuivan/anicat/internal/platform/validate"
	"github.com/taibuivan/anicat/pkg/namekey"
	"github.com/taibuivan/anicat/pkg/uuid"
)

// Service orchestrates genre lookups and mutations.
type Service struct {
	repo      Repository
	publisher *events.Publisher
	logger    *slog.Logger
}

// NewService constructs a genre [Service]. publisher may be nil.
func NewService(repo Repository, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListGenres returns every genre ordered by name.
func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.List(context)
}

// GetGenre returns one genre by id.
func (service *Service) GetGenre(context context.Context, id string) (*Genre, error) {
	return service.repo.FindByID(context, id)
}

// CreateGenre adds a genre explicitly. Unlike [Service.GetOrCreate] an
// existing match is an error.
func (service *Service) CreateGenre(context context.Context, name string) (*Genre, error) {
	name = namekey.Normalize(name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByName(context, name); err == nil {
		return nil, apperr.Conflict("Genre already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	genre := newGenre(name)
	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.created(context, genre)
	return genre, nil
}

/*
GetOrCreate resolves a genre name referenced by an anime write, creating the
genre on first use.

Returns:
  - *Genre: the existing genre (original spelling kept) or the new one
  - error: validation errors for blank or oversized names
*/
func (service *Service) GetOrCreate(context context.Context, name string) (*Genre, error) {
	name = namekey.Normalize(name)

	validator := &validate.Validator{}
	validator.Required("genreNames", name).MaxLen("genreNames", name, MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	genre, created, err := service.repo.GetOrCreateByName(context, newGenre(name))
	if err != nil {
		return nil, err
	}

	if created {
		service.created(context, genre)
	}
	return genre, nil
}

// DeleteGenre removes a genre and its anime links. Anime are untouched.
func (service *Service) DeleteGenre(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("genre_id", id))
	service.publisher.Publish(context, constants.SubjectGenreDeleted, map[string]string{"id": id})

	return nil
}

func (service *Service) created(context context.Context, genre *Genre) {
	service.logger.Info("genre_created",
		slog.String("genre_id", genre.ID),
		slog.String("name", genre.Name),
	)
	service.publisher.Publish(context, constants.SubjectGenreCreated, genre)
}

func newGenre(name string) *Genre {
	now := time.Now().UTC()
	return &Genre{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
