// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package season_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/core/anime"
	"github.com/taibuivan/anicat/internal/core/catalogtest"
	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/internal/core/season"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/pkg/uuid"
)

func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newSeasonRow(animeID, title string) *season.Season {
	return &season.Season{ID: uuid.New(), Title: title, AnimeID: animeID, CreatedAt: stamp(), UpdatedAt: stamp()}
}

/*
TestPostgresRepository_SeasonConstraints scopes title uniqueness to one anime,
rejects unknown parents and cascades to episodes.
*/
func TestPostgresRepository_SeasonConstraints(t *testing.T) {
	pool := catalogtest.Postgres(t)
	animeStore := anime.NewPostgresRepository(pool)
	repository := season.NewPostgresRepository(pool)
	episodes := episode.NewPostgresRepository(pool)
	ctx := context.Background()

	parent := &anime.Anime{ID: uuid.New(), Title: catalogtest.Unique("Haikyu"), CreatedAt: stamp(), UpdatedAt: stamp()}
	other := &anime.Anime{ID: uuid.New(), Title: catalogtest.Unique("Yowamushi"), CreatedAt: stamp(), UpdatedAt: stamp()}
	require.NoError(t, animeStore.Create(ctx, parent, nil))
	require.NoError(t, animeStore.Create(ctx, other, nil))

	first := newSeasonRow(parent.ID, "Season 1")
	require.NoError(t, repository.Create(ctx, first))

	assert.True(t, apperr.IsConflict(repository.Create(ctx, newSeasonRow(parent.ID, "Season 1"))))
	assert.NoError(t, repository.Create(ctx, newSeasonRow(other.ID, "Season 1")))
	assert.True(t, apperr.IsNotFound(repository.Create(ctx, newSeasonRow(uuid.New(), "Season 1"))))

	exists, err := repository.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repository.Exists(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, exists)

	second := newSeasonRow(parent.ID, "Season 2")
	require.NoError(t, repository.Create(ctx, second))
	second.Title = "Season 1"
	second.UpdatedAt = stamp()
	assert.True(t, apperr.IsConflict(repository.Update(ctx, second)))

	listed, err := repository.ListByAnimeIDs(ctx, []string{parent.ID})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID)

	opener := &episode.Episode{ID: uuid.New(), Title: "The End and the Beginning", SeasonID: first.ID, CreatedAt: stamp(), UpdatedAt: stamp()}
	require.NoError(t, episodes.Create(ctx, opener))

	require.NoError(t, repository.Delete(ctx, first.ID))
	_, err = episodes.FindByID(ctx, opener.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(repository.Delete(ctx, first.ID)))
}
