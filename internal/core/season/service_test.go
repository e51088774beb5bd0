// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package season_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/core/catalogtest"
	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/internal/core/season"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/pkg/uuid"
)

func newService(catalog *catalogtest.Catalog) *season.Service {
	return season.NewService(catalog.Seasons(), catalog.Episodes(), catalog.Anime(), nil, catalogtest.Logger())
}

/*
TestCreateSeason covers validation, the parent check and scoped uniqueness.
*/
func TestCreateSeason(t *testing.T) {
	ctx := context.Background()
	catalog := catalogtest.New()
	service := newService(catalog)
	animeID := catalog.SeedAnime(t, "Cowboy Bebop")

	created, err := service.CreateSeason(ctx, animeID, season.Input{Title: " Session 1 "})
	require.NoError(t, err)
	assert.Equal(t, "Session 1", created.Title)
	assert.Equal(t, animeID, created.AnimeID)
	assert.NotNil(t, created.Episodes)
	assert.Empty(t, created.Episodes)

	tests := []struct {
		name        string
		animeID     string
		title       string
		wantCode    string
		wantMessage string
	}{
		{"blank_title", animeID, "", apperr.CodeValidation, "Invalid title: This field is required"},
		{"unknown_anime", uuid.New(), "Session 1", apperr.CodeNotFound, "Anime not found"},
		{"duplicate", animeID, "Session 1", apperr.CodeConflict, "Season with this title already exists for this anime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateSeason(ctx, tt.animeID, season.Input{Title: tt.title})
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.wantCode))
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}

	// The same title under another anime is fine.
	_, err = service.CreateSeason(ctx, catalog.SeedAnime(t, "Trigun"), season.Input{Title: "Session 1"})
	require.NoError(t, err)
}

/*
TestListSeasons orders newest first and attaches episodes oldest first.
*/
func TestListSeasons(t *testing.T) {
	ctx := context.Background()
	catalog := catalogtest.New()
	service := newService(catalog)
	animeID := catalog.SeedAnime(t, "Monster")

	first, err := service.CreateSeason(ctx, animeID, season.Input{Title: "Part 1"})
	require.NoError(t, err)
	second, err := service.CreateSeason(ctx, animeID, season.Input{Title: "Part 2"})
	require.NoError(t, err)
	catalog.SeedEpisode(t, first.ID, "Herr Dr. Tenma")
	catalog.SeedEpisode(t, first.ID, "Downfall")

	seasons, err := service.ListSeasons(ctx, animeID)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, second.ID, seasons[0].ID)
	assert.Empty(t, seasons[0].Episodes)
	require.Len(t, seasons[1].Episodes, 2)
	assert.Equal(t, "Herr Dr. Tenma", seasons[1].Episodes[0].Title)

	got, err := service.GetSeason(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Episodes, 2)

	malformed, err := service.ListSeasons(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, malformed)
}

/*
TestUpdateSeason renames within the uniqueness scope.
*/
func TestUpdateSeason(t *testing.T) {
	ctx := context.Background()
	catalog := catalogtest.New()
	service := newService(catalog)
	animeID := catalog.SeedAnime(t, "Planetes")

	first, err := service.CreateSeason(ctx, animeID, season.Input{Title: "Season 1"})
	require.NoError(t, err)
	_, err = service.CreateSeason(ctx, animeID, season.Input{Title: "Season 2"})
	require.NoError(t, err)
	catalog.SeedEpisode(t, first.ID, "Outside the Atmosphere")

	updated, err := service.UpdateSeason(ctx, first.ID, season.Input{Title: "Phase 1"})
	require.NoError(t, err)
	assert.Equal(t, "Phase 1", updated.Title)
	assert.Len(t, updated.Episodes, 1)

	_, err = service.UpdateSeason(ctx, first.ID, season.Input{Title: "Season 2"})
	assert.True(t, apperr.IsConflict(err))

	_, err = service.UpdateSeason(ctx, uuid.New(), season.Input{Title: "x"})
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestDeleteSeason cascades to the season's episodes only.
*/
func TestDeleteSeason(t *testing.T) {
	ctx := context.Background()
	catalog := catalogtest.New()
	service := newService(catalog)
	animeID := catalog.SeedAnime(t, "Haikyu")

	doomed := catalog.SeedSeason(t, animeID, "Season 1")
	kept := catalog.SeedSeason(t, animeID, "Season 2")
	catalog.SeedEpisode(t, doomed, "Ep 1")
	catalog.SeedEpisode(t, doomed, "Ep 2")
	catalog.SeedEpisode(t, kept, "Ep 1")

	require.NoError(t, service.DeleteSeason(ctx, doomed))

	episodes, err := episode.NewService(catalog.Episodes(), catalog.Seasons(), nil, catalogtest.Logger()).ListEpisodes(ctx, "")
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.Equal(t, kept, episodes[0].SeasonID)

	assert.True(t, apperr.IsNotFound(service.DeleteSeason(ctx, doomed)))
}
