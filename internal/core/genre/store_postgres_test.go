// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/core/catalogtest"
	"github.com/taibuivan/anicat/internal/core/genre"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/pkg/uuid"
)

func newGenreRow(name string) *genre.Genre {
	stamp := time.Now().UTC().Truncate(time.Microsecond)
	return &genre.Genre{ID: uuid.New(), Name: name, CreatedAt: stamp, UpdatedAt: stamp}
}

/*
TestPostgresRepository_GetOrCreateByName inserts once and then returns the
stored row for any spelling with the same key.
*/
func TestPostgresRepository_GetOrCreateByName(t *testing.T) {
	repository := genre.NewPostgresRepository(catalogtest.Postgres(t))
	ctx := context.Background()

	name := catalogtest.Unique("Slice of Life")

	first, created, err := repository.GetOrCreateByName(ctx, newGenreRow(name))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, name, first.Name)

	again, created, err := repository.GetOrCreateByName(ctx, newGenreRow(strings.ToUpper(name)))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, name, again.Name)

	found, err := repository.FindByName(ctx, strings.ToLower(name))
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

/*
TestPostgresRepository_CreateAndDelete covers the key conflict, lookups and
a repeated delete.
*/
func TestPostgresRepository_CreateAndDelete(t *testing.T) {
	repository := genre.NewPostgresRepository(catalogtest.Postgres(t))
	ctx := context.Background()

	row := newGenreRow(catalogtest.Unique("Isekai"))
	require.NoError(t, repository.Create(ctx, row))

	err := repository.Create(ctx, newGenreRow(strings.ToUpper(row.Name)))
	assert.True(t, apperr.IsConflict(err))

	found, err := repository.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.Name, found.Name)

	list, err := repository.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, genreIDs(list), row.ID)

	require.NoError(t, repository.Delete(ctx, row.ID))
	assert.True(t, apperr.IsNotFound(repository.Delete(ctx, row.ID)))

	_, err = repository.FindByID(ctx, row.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func genreIDs(list []*genre.Genre) []string {
	ids := make([]string, 0, len(list))
	for _, row := range list {
		ids = append(ids, row.ID)
	}
	return ids
}
