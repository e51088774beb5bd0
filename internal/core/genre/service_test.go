// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/core/catalogtest"
	"github.com/taibuivan/anicat/internal/core/genre"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/events"
)

type recordingConn struct {
	subjects []string
}

func (c *recordingConn) Publish(subject string, _ []byte) error {
	c.subjects = append(c.subjects, subject)
	return nil
}

func newService(t *testing.T) (*genre.Service, *recordingConn) {
	t.Helper()
	conn := &recordingConn{}
	publisher := events.NewPublisher(conn, catalogtest.Logger())
	return genre.NewService(catalogtest.New().Genres(), publisher, catalogtest.Logger()), conn
}

/*
TestCreateGenre covers normalization, validation and duplicate detection.
*/
func TestCreateGenre(t *testing.T) {
	ctx := context.Background()
	service, conn := newService(t)

	created, err := service.CreateGenre(ctx, "  Slice   of Life ")
	require.NoError(t, err)
	assert.Equal(t, "Slice of Life", created.Name)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"catalog.genre.created"}, conn.subjects)

	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"blank", "   ", apperr.CodeValidation},
		{"too_long", strings.Repeat("a", genre.MaxNameLength+1), apperr.CodeValidation},
		{"duplicate_exact", "Slice of Life", apperr.CodeConflict},
		{"duplicate_case", "SLICE OF LIFE", apperr.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateGenre(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.wantCode), err.Error())
		})
	}
}

/*
TestGetOrCreate keeps the first spelling and only announces new genres.
*/
func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	service, conn := newService(t)

	first, err := service.GetOrCreate(ctx, "Action")
	require.NoError(t, err)

	again, err := service.GetOrCreate(ctx, " action ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Action", again.Name)
	assert.Len(t, conn.subjects, 1)

	_, err = service.GetOrCreate(ctx, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	genres, err := service.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

/*
TestListGenres returns genres sorted by name.
*/
func TestListGenres(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	for _, name := range []string{"Romance", "Action", "Mecha"} {
		_, err := service.CreateGenre(ctx, name)
		require.NoError(t, err)
	}

	genres, err := service.ListGenres(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Action", "Mecha", "Romance"}, names)
}

/*
TestDeleteGenre removes once and reports not found afterwards.
*/
func TestDeleteGenre(t *testing.T) {
	ctx := context.Background()
	service, conn := newService(t)

	created, err := service.CreateGenre(ctx, "Horror")
	require.NoError(t, err)

	require.NoError(t, service.DeleteGenre(ctx, created.ID))
	assert.Equal(t, "catalog.genre.deleted", conn.subjects[len(conn.subjects)-1])

	_, err = service.GetGenre(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	err = service.DeleteGenre(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}
