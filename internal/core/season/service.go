// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package season

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
	"github.com/taibuivan/anicat/internal/platform/events"
	"github.com/taibuivan/anicat/internal/platform/validate"
	"github.com/taibuivan/anicat/pkg/uuid"
)

var errDuplicateTitle = apperr.Conflict("Season with this title already exists for this anime")

// Service orchestrates season reads and writes.
type Service struct {
	repo      Repository
	episodes  EpisodeLister
	anime     AnimeLookup
	publisher *events.Publisher
	logger    *slog.Logger
}

// NewService constructs a season [Service]. publisher may be nil.
func NewService(repo Repository, episodes EpisodeLister, anime AnimeLookup, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		episodes:  episodes,
		anime:     anime,
		publisher: publisher,
		logger:    logger,
	}
}

// ListSeasons returns seasons newest first with their episodes attached.
// An empty animeID lists the seasons of every anime.
func (service *Service) ListSeasons(context context.Context, animeID string) ([]*Season, error) {
	if animeID != "" && !uuid.Valid(animeID) {
		return []*Season{}, nil
	}

	seasons, err := service.repo.List(context, animeID)
	if err != nil {
		return nil, err
	}

	if err := service.hydrate(context, seasons...); err != nil {
		return nil, err
	}
	return seasons, nil
}

// GetSeason returns one season with its episodes, oldest first.
func (service *Service) GetSeason(context context.Context, id string) (*Season, error) {
	season, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.hydrate(context, season); err != nil {
		return nil, err
	}
	return season, nil
}

/*
CreateSeason adds a season to an anime.

Returns:
  - *Season: The new season with an empty episode list
  - error: Validation, NotFound (anime) or Conflict errors
*/
func (service *Service) CreateSeason(context context.Context, animeID string, input Input) (*Season, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	exists, err := service.anime.Exists(context, animeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Anime")
	}

	if err := service.ensureTitleFree(context, title, animeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	season := &Season{
		ID:        uuid.New(),
		Title:     title,
		AnimeID:   animeID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, season); err != nil {
		if apperr.IsConflict(err) {
			return nil, errDuplicateTitle
		}
		return nil, err
	}
	AttachEpisodes([]*Season{season}, nil)

	service.logger.Info("season_created",
		slog.String("season_id", season.ID),
		slog.String("anime_id", animeID),
		slog.String("title", title),
	)
	service.publisher.Publish(context, constants.SubjectSeasonCreated, season)

	return season, nil
}

// UpdateSeason renames a season. A changed title must be free within the anime.
func (service *Service) UpdateSeason(context context.Context, id string, input Input) (*Season, error) {
	season, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if title != season.Title {
		if err := service.ensureTitleFree(context, title, season.AnimeID); err != nil {
			return nil, err
		}
	}

	season.Title = title
	season.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, season); err != nil {
		if apperr.IsConflict(err) {
			return nil, errDuplicateTitle
		}
		return nil, err
	}

	if err := service.hydrate(context, season); err != nil {
		return nil, err
	}

	service.logger.Info("season_updated", slog.String("season_id", season.ID))
	service.publisher.Publish(context, constants.SubjectSeasonUpdated, season)

	return season, nil
}

// DeleteSeason removes a season and all of its episodes.
func (service *Service) DeleteSeason(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("season_deleted", slog.String("season_id", id))
	service.publisher.Publish(context, constants.SubjectSeasonDeleted, map[string]string{"id": id})

	return nil
}

// hydrate attaches episodes to seasons with a single batch query.
func (service *Service) hydrate(context context.Context, seasons ...*Season) error {
	if len(seasons) == 0 {
		return nil
	}

	episodes, err := service.episodes.ListBySeasonIDs(context, IDs(seasons))
	if err != nil {
		return err
	}

	AttachEpisodes(seasons, episodes)
	return nil
}

func (service *Service) ensureTitleFree(context context.Context, title, animeID string) error {
	_, err := service.repo.FindByTitleAndAnime(context, title, animeID)
	switch {
	case err == nil:
		return errDuplicateTitle
	case apperr.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func validateTitle(title string) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLength)
	return validator.Err()
}
