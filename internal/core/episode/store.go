// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

import "context"

// # Episode Data Access

// Repository defines the data access contract for episodes.
type Repository interface {

	/*
		List returns episodes ordered by creation time, oldest first.

		Parameters:
		  - context: context.Context
		  - seasonID: string (optional filter; empty lists every episode)

		Returns:
		  - []*Episode: Matching episodes, never nil
		  - error: Storage failures
	*/
	List(context context.Context, seasonID string) ([]*Episode, error)

	/*
		FindByID returns the episode with the given ID.

		Returns:
		  - error: apperr NOT_FOUND if missing
	*/
	FindByID(context context.Context, id string) (*Episode, error)

	/*
		FindByTitleAndSeason returns the episode titled title inside seasonID.
		Titles are compared exactly.

		Returns:
		  - error: apperr NOT_FOUND if missing
	*/
	FindByTitleAndSeason(context context.Context, title, seasonID string) (*Episode, error)

	/*
		Create persists a new episode.

		Returns:
		  - error: NOT_FOUND when the season is gone, CONFLICT on a duplicate title
	*/
	Create(context context.Context, episode *Episode) error

	/*
		Update writes title, links and updated time of an existing episode.
		The season never changes.

		Returns:
		  - error: apperr NOT_FOUND if missing
	*/
	Update(context context.Context, episode *Episode) error

	// Delete removes one episode.
	Delete(context context.Context, id string) error

	/*
		ListBySeasonIDs loads the episodes of many seasons in one round trip,
		oldest first. Used to hydrate seasons and anime.
	*/
	ListBySeasonIDs(context context.Context, seasonIDs []string) ([]*Episode, error)
}

// SeasonLookup reports whether a season exists. Implemented by the season store.
type SeasonLookup interface {
	Exists(context context.Context, id string) (bool, error)
}
