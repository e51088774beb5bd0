// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/core/anime"
	"github.com/taibuivan/anicat/internal/core/catalogtest"
	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/internal/core/genre"
	"github.com/taibuivan/anicat/internal/core/season"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/pkg/uuid"
)

type postgresStores struct {
	anime    *anime.PostgresRepository
	genres   *genre.PostgresRepository
	seasons  *season.PostgresRepository
	episodes *episode.PostgresRepository
}

func newPostgresStores(t *testing.T) postgresStores {
	pool := catalogtest.Postgres(t)
	return postgresStores{
		anime:    anime.NewPostgresRepository(pool),
		genres:   genre.NewPostgresRepository(pool),
		seasons:  season.NewPostgresRepository(pool),
		episodes: episode.NewPostgresRepository(pool),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s postgresStores) createAnime(t *testing.T, title string, genreIDs ...string) *anime.Anime {
	t.Helper()
	row := &anime.Anime{ID: uuid.New(), Title: title, CreatedAt: now(), UpdatedAt: now()}
	require.NoError(t, s.anime.Create(context.Background(), row, genreIDs))
	return row
}

func (s postgresStores) createGenre(t *testing.T, name string) *genre.Genre {
	t.Helper()
	created, _, err := s.genres.GetOrCreateByName(context.Background(), &genre.Genre{ID: uuid.New(), Name: name, CreatedAt: now(), UpdatedAt: now()})
	require.NoError(t, err)
	return created
}

func linkedGenreIDs(t *testing.T, s postgresStores, animeID string) []string {
	t.Helper()
	links, err := s.anime.ListGenreLinks(context.Background(), []string{animeID})
	require.NoError(t, err)

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.Genre.ID)
	}
	return ids
}

/*
TestPostgresRepository_DeleteCascades removes seasons, episodes and genre
links with the anime while the genre itself survives.
*/
func TestPostgresRepository_DeleteCascades(t *testing.T) {
	stores := newPostgresStores(t)
	ctx := context.Background()

	drama := stores.createGenre(t, catalogtest.Unique("Drama"))
	show := stores.createAnime(t, catalogtest.Unique("Monster"), drama.ID)

	arc := &season.Season{ID: uuid.New(), Title: "Season 1", AnimeID: show.ID, CreatedAt: now(), UpdatedAt: now()}
	require.NoError(t, stores.seasons.Create(ctx, arc))

	pilot := &episode.Episode{ID: uuid.New(), Title: "Herr Dr. Tenma", SeasonID: arc.ID, CreatedAt: now(), UpdatedAt: now()}
	require.NoError(t, stores.episodes.Create(ctx, pilot))

	require.Equal(t, []string{drama.ID}, linkedGenreIDs(t, stores, show.ID))

	require.NoError(t, stores.anime.Delete(ctx, show.ID))

	_, err := stores.anime.FindByID(ctx, show.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = stores.seasons.FindByID(ctx, arc.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = stores.episodes.FindByID(ctx, pilot.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, linkedGenreIDs(t, stores, show.ID))

	_, err = stores.genres.FindByID(ctx, drama.ID)
	assert.NoError(t, err)

	assert.True(t, apperr.IsNotFound(stores.anime.Delete(ctx, show.ID)))
}

/*
TestPostgresRepository_GenreLinks replaces the link set wholesale, keeps it
for a nil set and clears it for an empty one.
*/
func TestPostgresRepository_GenreLinks(t *testing.T) {
	stores := newPostgresStores(t)
	ctx := context.Background()

	action := stores.createGenre(t, catalogtest.Unique("Action"))
	comedy := stores.createGenre(t, catalogtest.Unique("Comedy"))
	mecha := stores.createGenre(t, catalogtest.Unique("Mecha"))

	show := stores.createAnime(t, catalogtest.Unique("Gurren Lagann"), action.ID, comedy.ID)
	assert.ElementsMatch(t, []string{action.ID, comedy.ID}, linkedGenreIDs(t, stores, show.ID))

	show.UpdatedAt = now()
	require.NoError(t, stores.anime.Update(ctx, show, nil))
	assert.ElementsMatch(t, []string{action.ID, comedy.ID}, linkedGenreIDs(t, stores, show.ID))

	require.NoError(t, stores.anime.Update(ctx, show, []string{mecha.ID}))
	assert.Equal(t, []string{mecha.ID}, linkedGenreIDs(t, stores, show.ID))

	require.NoError(t, stores.anime.Update(ctx, show, []string{}))
	assert.Empty(t, linkedGenreIDs(t, stores, show.ID))

	// Deleting a genre detaches it from every anime.
	require.NoError(t, stores.anime.Update(ctx, show, []string{action.ID, mecha.ID}))
	require.NoError(t, stores.genres.Delete(ctx, mecha.ID))
	assert.Equal(t, []string{action.ID}, linkedGenreIDs(t, stores, show.ID))
}

/*
TestPostgresRepository_UnknownGenre rolls the whole create back when a link
points at a missing genre.
*/
func TestPostgresRepository_UnknownGenre(t *testing.T) {
	stores := newPostgresStores(t)
	ctx := context.Background()

	title := catalogtest.Unique("Orphan")
	row := &anime.Anime{ID: uuid.New(), Title: title, CreatedAt: now(), UpdatedAt: now()}

	err := stores.anime.Create(ctx, row, []string{uuid.New()})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = stores.anime.FindByTitle(ctx, title)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestPostgresRepository_Search matches case-insensitively and treats LIKE
wildcards typed by the user literally.
*/
func TestPostgresRepository_Search(t *testing.T) {
	stores := newPostgresStores(t)
	ctx := context.Background()

	tag := catalogtest.Unique("Search")
	percent := stores.createAnime(t, tag+" 100% Pure")
	stores.createAnime(t, tag+" 1000 Cuts")
	underscore := stores.createAnime(t, tag+" a_b")
	stores.createAnime(t, tag+" axb")

	titles := func(search string) []string {
		list, err := stores.anime.List(ctx, search)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, row := range list {
			out = append(out, row.Title)
		}
		return out
	}

	assert.Equal(t, []string{percent.Title}, titles(tag+" 100%"))
	assert.Equal(t, []string{underscore.Title}, titles(tag+" a_b"))
	assert.Len(t, titles(strings.ToUpper(tag)), 4)
	assert.Empty(t, titles(tag+` \`))
}

/*
TestPostgresRepository_DuplicateTitle reports the unique constraint as a
conflict on create and update.
*/
func TestPostgresRepository_DuplicateTitle(t *testing.T) {
	stores := newPostgresStores(t)
	ctx := context.Background()

	first := stores.createAnime(t, catalogtest.Unique("Planetes"))
	second := stores.createAnime(t, catalogtest.Unique("Planetes"))

	duplicate := &anime.Anime{ID: uuid.New(), Title: first.Title, CreatedAt: now(), UpdatedAt: now()}
	assert.True(t, apperr.IsConflict(stores.anime.Create(ctx, duplicate, nil)))

	second.Title = first.Title
	assert.True(t, apperr.IsConflict(stores.anime.Update(ctx, second, nil)))

	missing := &anime.Anime{ID: uuid.New(), Title: catalogtest.Unique("Nowhere"), UpdatedAt: now()}
	assert.True(t, apperr.IsNotFound(stores.anime.Update(ctx, missing, nil)))
}
