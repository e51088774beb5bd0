// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/core/anime"
	"github.com/taibuivan/anicat/internal/core/catalogtest"
	"github.com/taibuivan/anicat/internal/platform/respond"
)

/*
TestAnimeRoutes walks the full lifecycle through the HTTP layer.
*/
func TestAnimeRoutes(t *testing.T) {
	f := newFixture()
	router := catalogtest.Router(anime.NewHandler(f.service).RegisterRoutes)
	body := map[string]any{"title": "Ping Pong", "genreNames": []string{"Sports"}}

	recorder := catalogtest.Do(t, router, http.MethodPost, "/api/anime", catalogtest.UserToken, body)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = catalogtest.Do(t, router, http.MethodPost, "/api/anime", catalogtest.AdminToken, body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	created := catalogtest.Decode[anime.Anime](t, recorder)
	require.Len(t, created.Genres, 1)
	assert.Equal(t, "Sports", created.Genres[0].Name)

	recorder = catalogtest.Do(t, router, http.MethodPost, "/api/anime", catalogtest.AdminToken, body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Anime with this title already exists", catalogtest.Decode[respond.ErrorBody](t, recorder).Message)

	recorder = catalogtest.Do(t, router, http.MethodGet, "/api/anime?search="+url.QueryEscape("ping"), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, catalogtest.Decode[[]anime.Anime](t, recorder), 1)

	recorder = catalogtest.Do(t, router, http.MethodPut, "/api/anime/"+created.ID, catalogtest.AdminToken,
		map[string]any{"title": "Ping Pong the Animation", "genreNames": []string{}})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	updated := catalogtest.Decode[anime.Anime](t, recorder)
	assert.Equal(t, "Ping Pong the Animation", updated.Title)
	assert.Empty(t, updated.Genres)

	recorder = catalogtest.Do(t, router, http.MethodDelete, "/api/anime/"+created.ID, catalogtest.AdminToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Anime and all associated data removed", catalogtest.Decode[respond.MessageBody](t, recorder).Message)

	recorder = catalogtest.Do(t, router, http.MethodGet, "/api/anime/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Anime not found", catalogtest.Decode[respond.ErrorBody](t, recorder).Message)
}

/*
TestAnimeRoutes_Shape checks that empty relations and unset fields are
rendered as [] and null rather than omitted.
*/
func TestAnimeRoutes_Shape(t *testing.T) {
	f := newFixture()
	router := catalogtest.Router(anime.NewHandler(f.service).RegisterRoutes)
	id := f.catalog.SeedAnime(t, "Mushishi")

	recorder := catalogtest.Do(t, router, http.MethodGet, "/api/anime/"+id, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := catalogtest.Decode[map[string]any](t, recorder)
	assert.Equal(t, []any{}, payload["genres"])
	assert.Equal(t, []any{}, payload["seasons"])
	assert.Contains(t, payload, "poster")
	assert.Nil(t, payload["poster"])
	assert.Contains(t, payload, "createdAt")
}
