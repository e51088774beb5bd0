// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
	"github.com/taibuivan/anicat/internal/platform/events"
	"github.com/taibuivan/anicat/internal/platform/validate"
	"github.com/taibuivan/anicat/pkg/pointer"
	"github.com/taibuivan/anicat/pkg/uuid"
)

// errDuplicateTitle is returned when a season already has an episode with the title.
var errDuplicateTitle = apperr.Conflict("Episode with this title already exists for this season")

// # Service Layer

// Service orchestrates the business logic for episodes.
type Service struct {
	repo      Repository
	seasons   SeasonLookup
	publisher *events.Publisher
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(repo Repository, seasons SeasonLookup, publisher *events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		seasons:   seasons,
		publisher: publisher,
		logger:    logger,
	}
}

// # Episode Lookups

/*
ListEpisodes returns episodes oldest first, optionally restricted to one season.

Parameters:
  - context: context.Context
  - seasonID: string (empty for all seasons)

Returns:
  - []*Episode: Matching episodes; an unknown or malformed season id yields none
  - error: Storage failures
*/
func (service *Service) ListEpisodes(context context.Context, seasonID string) ([]*Episode, error) {
	if seasonID != "" && !uuid.Valid(seasonID) {
		return []*Episode{}, nil
	}
	return service.repo.List(context, seasonID)
}

// GetEpisode returns one episode by id.
func (service *Service) GetEpisode(context context.Context, id string) (*Episode, error) {
	return service.repo.FindByID(context, id)
}

// # Episode Management

/*
CreateEpisode adds an episode to a season.

Description: The season must exist and must not already hold an episode with
the same title. The unique constraint on (season_id, title) backs the check
up when two creates race.

Parameters:
  - context: context.Context
  - seasonID: string (owning season)
  - input: Input (title and optional links)

Returns:
  - *Episode: The stored episode
  - error: Validation, NotFound (season) or Conflict errors
*/
func (service *Service) CreateEpisode(context context.Context, seasonID string, input Input) (*Episode, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := service.seasons.Exists(context, seasonID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Season")
	}

	if err := service.ensureTitleFree(context, input.Title, seasonID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	episode := &Episode{
		ID:        uuid.New(),
		Title:     input.Title,
		Link480p:  input.Link480p,
		Link720p:  input.Link720p,
		Link1080p: input.Link1080p,
		SeasonID:  seasonID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, episode); err != nil {
		if apperr.IsConflict(err) {
			return nil, errDuplicateTitle
		}
		return nil, err
	}

	service.logger.Info("episode_created",
		slog.String("episode_id", episode.ID),
		slog.String("season_id", seasonID),
		slog.String("title", episode.Title),
	)
	service.publisher.Publish(context, constants.SubjectEpisodeCreated, episode)

	return episode, nil
}

/*
UpdateEpisode replaces the title and links of an episode.

Description: A changed title is checked against the other episodes of the
same season. Links omitted from input are cleared.

Returns:
  - *Episode: The updated episode
  - error: NotFound, Validation or Conflict errors
*/
func (service *Service) UpdateEpisode(context context.Context, id string, input Input) (*Episode, error) {
	episode, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.Title != episode.Title {
		if err := service.ensureTitleFree(context, input.Title, episode.SeasonID); err != nil {
			return nil, err
		}
	}

	episode.Title = input.Title
	episode.Link480p = input.Link480p
	episode.Link720p = input.Link720p
	episode.Link1080p = input.Link1080p
	episode.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, episode); err != nil {
		if apperr.IsConflict(err) {
			return nil, errDuplicateTitle
		}
		return nil, err
	}

	service.logger.Info("episode_updated", slog.String("episode_id", episode.ID))
	service.publisher.Publish(context, constants.SubjectEpisodeUpdated, episode)

	return episode, nil
}

// DeleteEpisode removes one episode.
func (service *Service) DeleteEpisode(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("episode_deleted", slog.String("episode_id", id))
	service.publisher.Publish(context, constants.SubjectEpisodeDeleted, map[string]string{"id": id})

	return nil
}

// # Internal Helpers

func (service *Service) ensureTitleFree(context context.Context, title, seasonID string) error {
	_, err := service.repo.FindByTitleAndSeason(context, title, seasonID)
	switch {
	case err == nil:
		return errDuplicateTitle
	case apperr.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func normalize(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Link480p = pointer.NilIfBlank(input.Link480p)
	input.Link720p = pointer.NilIfBlank(input.Link720p)
	input.Link1080p = pointer.NilIfBlank(input.Link1080p)
	return input
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxTitleLength)
	validator.URL(FieldLink480p, pointer.Val(input.Link480p))
	validator.URL(FieldLink720p, pointer.Val(input.Link720p))
	validator.URL(FieldLink1080p, pointer.Val(input.Link1080p))
	return validator.Err()
}
