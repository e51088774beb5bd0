// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package season manages the middle level of the catalog hierarchy.

A Season belongs to one Anime and owns its Episodes. Titles are unique within
an anime. Reads return seasons with their episodes attached, oldest episode
first.
*/
package season

import (
	"time"

	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/pkg/slice"
)

// Season groups the episodes of one anime.
type Season struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	AnimeID   string    `json:"animeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Episodes []*episode.Episode `json:"episodes"`
}

// Input carries the writable fields of a season.
type Input struct {
	Title string `json:"title"`
}

const (
	FieldTitle = "title"

	// MaxTitleLength bounds a season title in runes.
	MaxTitleLength = 255
)

// IDs returns the ids of seasons in order.
func IDs(seasons []*Season) []string {
	return slice.Map(seasons, func(s *Season) string { return s.ID })
}

// AttachEpisodes distributes episodes over their seasons, keeping the order of
// episodes. Every season ends up with a non-nil slice.
func AttachEpisodes(seasons []*Season, episodes []*episode.Episode) {
	bySeason := slice.GroupBy(episodes, func(e *episode.Episode) string { return e.SeasonID })

	for _, season := range seasons {
		season.Episodes = bySeason[season.ID]
		if season.Episodes == nil {
			season.Episodes = []*episode.Episode{}
		}
	}
}
