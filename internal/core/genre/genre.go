// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre manages the genre vocabulary of the catalog.

Genres are created explicitly by an admin or implicitly the first time an
anime references a name that does not exist yet. Names are matched through a
case-folded key, so "Action" and "action" are the same genre and the first
spelling wins.
*/
package genre

import "time"

// Genre is a category label linked to anime through the anime_genre join.
type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	// FieldName is the JSON field validated on create.
	FieldName = "name"

	// MaxNameLength bounds a genre name in runes.
	MaxNameLength = 100
)
