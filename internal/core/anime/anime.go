// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package anime is the root of the catalog hierarchy and the place where it is
assembled for readers.

Core Responsibility:

  - Catalogue: Anime rows with their scalar metadata and a unique title.
  - Genres: The anime_genre join, replaced wholesale on update. Names are
    resolved through the genre package, which creates unknown ones.
  - Hydration: Every read returns anime with genres, seasons and episodes
    attached, loaded one level per query and joined in memory.

Deleting an anime removes its seasons, their episodes and its genre links
through foreign key cascades.
*/
package anime

import (
	"time"

	"github.com/taibuivan/anicat/internal/core/season"
)

// # Domain Entities

// Anime is a catalog title. Reads always return it hydrated.
type Anime struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Poster      *string   `json:"poster"`
	AllDetails  *string   `json:"allDetails"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Genres  []GenreRef       `json:"genres"`
	Seasons []*season.Season `json:"seasons"`
}

// GenreRef is the short genre form nested inside an anime.
type GenreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GenreLink is one anime_genre row joined with the genre name.
type GenreLink struct {
	AnimeID string
	Genre   GenreRef
}

// Input carries the writable fields of an anime.
//
// GenreNames distinguishes omission from emptiness: nil keeps the current
// links on update, an empty list clears them.
type Input struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Poster      *string  `json:"poster"`
	AllDetails  *string  `json:"allDetails"`
	GenreNames  []string `json:"genreNames"`
}

// # Validation Rules

const (
	FieldTitle      = "title"
	FieldPoster     = "poster"
	FieldGenreNames = "genreNames"

	// MaxTitleLength bounds an anime title in runes.
	MaxTitleLength = 255
)
