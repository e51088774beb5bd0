// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"context"

	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/internal/core/genre"
	"github.com/taibuivan/anicat/internal/core/season"
)

// # Anime Data Access

// Repository defines the data access contract for anime rows and their genre
// links. Returned anime carry no genres or seasons; the [Service] attaches them.
type Repository interface {

	/*
		List returns anime newest first.

		Parameters:
		  - context: context.Context
		  - search: string (case-insensitive substring of the title; empty for all)
	*/
	List(context context.Context, search string) ([]*Anime, error)

	// FindByID returns apperr NOT_FOUND when id names no anime.
	FindByID(context context.Context, id string) (*Anime, error)

	// FindByTitle matches the title exactly.
	FindByTitle(context context.Context, title string) (*Anime, error)

	// Exists reports whether id names an anime. Malformed ids do not.
	Exists(context context.Context, id string) (bool, error)

	/*
		Create inserts the anime row and one anime_genre row per genre id in a
		single transaction.

		Returns:
		  - error: CONFLICT on a duplicate title, NOT_FOUND if a genre vanished
	*/
	Create(context context.Context, anime *Anime, genreIDs []string) error

	/*
		Update rewrites the scalar columns. When genreIDs is non-nil the genre
		links are replaced by exactly that set in the same transaction; a nil
		slice leaves them untouched.

		Concurrent updates of one anime are last-writer-wins for the link set.
	*/
	Update(context context.Context, anime *Anime, genreIDs []string) error

	// Delete removes the anime; seasons, episodes and links follow by cascade.
	Delete(context context.Context, id string) error

	// ListGenreLinks loads the genre links of many anime in one round trip.
	ListGenreLinks(context context.Context, animeIDs []string) ([]GenreLink, error)
}

// GenreResolver turns a genre name into a genre, creating it on first use.
// Implemented by [genre.Service].
type GenreResolver interface {
	GetOrCreate(context context.Context, name string) (*genre.Genre, error)
}

// SeasonLister loads the seasons of many anime in one call.
type SeasonLister interface {
	ListByAnimeIDs(context context.Context, animeIDs []string) ([]*season.Season, error)
}

// EpisodeLister loads the episodes of many seasons in one call.
type EpisodeLister interface {
	ListBySeasonIDs(context context.Context, seasonIDs []string) ([]*episode.Episode, error)
}
