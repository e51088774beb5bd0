// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/anicat/internal/core/genre"
	"github.com/taibuivan/anicat/internal/core/season"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
	"github.com/taibuivan/anicat/internal/platform/events"
	"github.com/taibuivan/anicat/internal/platform/validate"
	"github.com/taibuivan/anicat/pkg/namekey"
	"github.com/taibuivan/anicat/pkg/pointer"
	"github.com/taibuivan/anicat/pkg/slice"
	"github.com/taibuivan/anicat/pkg/uuid"
)

var errDuplicateTitle = apperr.Conflict("Anime with this title already exists")

// # Service Layer

// Service is the catalog service: it validates anime writes, resolves genre
// names and returns fully hydrated anime.
type Service struct {
	repo      Repository
	genres    GenreResolver
	seasons   SeasonLister
	episodes  EpisodeLister
	publisher *events.Publisher
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its collaborators. publisher may be nil.
func NewService(repo Repository, genres GenreResolver, seasons SeasonLister, episodes EpisodeLister, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		genres:    genres,
		seasons:   seasons,
		episodes:  episodes,
		publisher: publisher,
		logger:    logger,
	}
}

// # Anime Lookups

/*
ListAnime returns hydrated anime, newest first.

Parameters:
  - context: context.Context
  - search: string (case-insensitive title substring; blank lists everything)

Returns:
  - []*Anime: Anime with genres, seasons and episodes attached
  - error: Storage failures
*/
func (service *Service) ListAnime(context context.Context, search string) ([]*Anime, error) {
	list, err := service.repo.List(context, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	if err := service.hydrate(context, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetAnime returns one hydrated anime.
func (service *Service) GetAnime(context context.Context, id string) (*Anime, error) {
	anime, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.hydrate(context, []*Anime{anime}); err != nil {
		return nil, err
	}
	return anime, nil
}

// # Anime Management

/*
CreateAnime adds an anime and links it to the named genres.

Description: The title must be unused. Each genre name is resolved through
the [GenreResolver], which creates unknown genres; names that differ only in
case or spacing count once. The anime row and its links are written in one
transaction.

Returns:
  - *Anime: The hydrated new anime
  - error: Validation or Conflict errors
*/
func (service *Service) CreateAnime(context context.Context, input Input) (*Anime, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := service.ensureTitleFree(context, input.Title, ""); err != nil {
		return nil, err
	}

	genreIDs, err := service.resolveGenres(context, input.GenreNames)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	anime := &Anime{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Poster:      input.Poster,
		AllDetails:  input.AllDetails,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, anime, genreIDs); err != nil {
		if apperr.IsConflict(err) {
			return nil, errDuplicateTitle
		}
		return nil, err
	}

	created, err := service.GetAnime(context, anime.ID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("anime_created",
		slog.String("anime_id", created.ID),
		slog.String("title", created.Title),
		slog.Int("genres", len(created.Genres)),
	)
	service.publisher.Publish(context, constants.SubjectAnimeCreated, created)

	return created, nil
}

/*
UpdateAnime replaces the scalar fields of an anime and, when GenreNames is
present, its whole genre set.

Description: A new title must not belong to another anime. An empty
GenreNames list clears every link; a nil one keeps them.

Returns:
  - *Anime: The hydrated anime after the update
  - error: NotFound, Validation or Conflict errors
*/
func (service *Service) UpdateAnime(context context.Context, id string, input Input) (*Anime, error) {
	anime, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.Title != anime.Title {
		if err := service.ensureTitleFree(context, input.Title, anime.ID); err != nil {
			return nil, err
		}
	}

	var genreIDs []string
	if input.GenreNames != nil {
		if genreIDs, err = service.resolveGenres(context, input.GenreNames); err != nil {
			return nil, err
		}
	}

	anime.Title = input.Title
	anime.Description = input.Description
	anime.Poster = input.Poster
	anime.AllDetails = input.AllDetails
	anime.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, anime, genreIDs); err != nil {
		if apperr.IsConflict(err) {
			return nil, errDuplicateTitle
		}
		return nil, err
	}

	updated, err := service.GetAnime(context, anime.ID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("anime_updated",
		slog.String("anime_id", updated.ID),
		slog.Bool("genres_replaced", genreIDs != nil),
	)
	service.publisher.Publish(context, constants.SubjectAnimeUpdated, updated)

	return updated, nil
}

// DeleteAnime removes an anime with all of its seasons, episodes and genre links.
func (service *Service) DeleteAnime(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("anime_deleted", slog.String("anime_id", id))
	service.publisher.Publish(context, constants.SubjectAnimeDeleted, map[string]string{"id": id})

	return nil
}

// # Hydration

/*
hydrate attaches genres, seasons and episodes to a batch of anime.

Description: Batch-fetch-then-join. One query loads the genre links of the
whole batch, one its seasons and one the episodes of those seasons; rows are
then grouped by foreign key in memory. The query count does not depend on
the batch size.
*/
func (service *Service) hydrate(context context.Context, list []*Anime) error {
	if len(list) == 0 {
		return nil
	}

	animeIDs := slice.Map(list, func(a *Anime) string { return a.ID })

	links, err := service.repo.ListGenreLinks(context, animeIDs)
	if err != nil {
		return err
	}

	seasons, err := service.seasons.ListByAnimeIDs(context, animeIDs)
	if err != nil {
		return err
	}

	episodes, err := service.episodes.ListBySeasonIDs(context, season.IDs(seasons))
	if err != nil {
		return err
	}
	season.AttachEpisodes(seasons, episodes)

	linksByAnime := slice.GroupBy(links, func(l GenreLink) string { return l.AnimeID })
	seasonsByAnime := slice.GroupBy(seasons, func(s *season.Season) string { return s.AnimeID })

	for _, anime := range list {
		anime.Genres = slice.Map(linksByAnime[anime.ID], func(l GenreLink) GenreRef { return l.Genre })
		if anime.Genres == nil {
			anime.Genres = []GenreRef{}
		}

		anime.Seasons = seasonsByAnime[anime.ID]
		if anime.Seasons == nil {
			anime.Seasons = []*season.Season{}
		}
	}

	return nil
}

// # Internal Helpers

// resolveGenres maps names to genre ids, creating unknown genres. The result
// is never nil so callers can tell "clear all" from "keep".
func (service *Service) resolveGenres(context context.Context, names []string) ([]string, error) {
	unique := namekey.Dedupe(names)
	ids := make([]string, 0, len(unique))

	for _, name := range unique {
		resolved, err := service.genres.GetOrCreate(context, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, resolved.ID)
	}

	return ids, nil
}

// ensureTitleFree fails when title belongs to an anime other than selfID.
func (service *Service) ensureTitleFree(context context.Context, title, selfID string) error {
	existing, err := service.repo.FindByTitle(context, title)
	switch {
	case err == nil && existing.ID != selfID:
		return errDuplicateTitle
	case err == nil, apperr.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func normalize(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = pointer.NilIfBlank(input.Description)
	input.Poster = pointer.NilIfBlank(input.Poster)
	input.AllDetails = pointer.NilIfBlank(input.AllDetails)
	return input
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxTitleLength)
	validator.URL(FieldPoster, pointer.Val(input.Poster))

	for _, name := range input.GenreNames {
		validator.MaxLen(FieldGenreNames, namekey.Normalize(name), genre.MaxNameLength)
	}

	return validator.Err()
}
