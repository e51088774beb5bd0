// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package season

import (
	"context"

	"github.com/taibuivan/anicat/internal/core/episode"
)

// Repository is the Season Store. Returned seasons have no episodes attached.
type Repository interface {
	// List returns seasons newest first, optionally restricted to one anime.
	List(context context.Context, animeID string) ([]*Season, error)

	FindByID(context context.Context, id string) (*Season, error)
	FindByTitleAndAnime(context context.Context, title, animeID string) (*Season, error)

	// Exists reports whether id names a season. Malformed ids do not.
	Exists(context context.Context, id string) (bool, error)

	Create(context context.Context, season *Season) error
	Update(context context.Context, season *Season) error

	// Delete removes the season and, by cascade, its episodes.
	Delete(context context.Context, id string) error

	// ListByAnimeIDs loads the seasons of many anime, oldest first.
	ListByAnimeIDs(context context.Context, animeIDs []string) ([]*Season, error)
}

// EpisodeLister loads episodes for a set of seasons in one call.
type EpisodeLister interface {
	ListBySeasonIDs(context context.Context, seasonIDs []string) ([]*episode.Episode, error)
}

// AnimeLookup reports whether an anime exists. Implemented by the anime store.
type AnimeLookup interface {
	Exists(context context.Context, id string) (bool, error)
}
