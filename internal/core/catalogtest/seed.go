// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalogtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/core/anime"
	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/internal/core/season"
	"github.com/taibuivan/anicat/pkg/uuid"
)

// SeedAnime stores a bare anime and returns its id.
func (c *Catalog) SeedAnime(t *testing.T, title string) string {
	t.Helper()

	now := time.Now().UTC()
	row := &anime.Anime{ID: uuid.New(), Title: title, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, c.Anime().Create(context.Background(), row, nil))
	return row.ID
}

// SeedSeason stores a season under animeID and returns its id.
func (c *Catalog) SeedSeason(t *testing.T, animeID, title string) string {
	t.Helper()

	now := time.Now().UTC()
	row := &season.Season{ID: uuid.New(), Title: title, AnimeID: animeID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, c.Seasons().Create(context.Background(), row))
	return row.ID
}

// SeedEpisode stores an episode without links under seasonID and returns its id.
func (c *Catalog) SeedEpisode(t *testing.T, seasonID, title string) string {
	t.Helper()

	now := time.Now().UTC()
	row := &episode.Episode{ID: uuid.New(), Title: title, SeasonID: seasonID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, c.Episodes().Create(context.Background(), row))
	return row.ID
}
