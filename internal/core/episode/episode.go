// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package episode manages the leaf level of the catalog hierarchy.

An Episode belongs to exactly one Season and carries up to three stream links,
one per quality. Titles are unique within a season. Deleting the owning
season removes its episodes through the foreign key cascade.
*/
package episode

import "time"

// Episode is a playable unit of a season.
type Episode struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link480p  *string   `json:"link480p"`
	Link720p  *string   `json:"link720p"`
	Link1080p *string   `json:"link1080p"`
	SeasonID  string    `json:"seasonId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input carries the writable fields of an episode. A nil or blank link is
// stored as NULL.
type Input struct {
	Title     string  `json:"title"`
	Link480p  *string `json:"link480p"`
	Link720p  *string `json:"link720p"`
	Link1080p *string `json:"link1080p"`
}

const (
	FieldTitle     = "title"
	FieldLink480p  = "link480p"
	FieldLink720p  = "link720p"
	FieldLink1080p = "link1080p"

	// MaxTitleLength bounds an episode title in runes.
	MaxTitleLength = 255
)
