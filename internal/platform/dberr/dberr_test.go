// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the application taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		resource string
		code     string
		message  string
	}{
		{"no_rows", pgx.ErrNoRows, "Anime", apperr.CodeNotFound, "Anime not found"},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), "Genre", apperr.CodeNotFound, "Genre not found"},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "Season", apperr.CodeConflict, "Season already exists"},
		{"dangling_season", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "Episode", apperr.CodeNotFound, "Season not found"},
		{"dangling_anime", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "Season", apperr.CodeNotFound, "Anime not found"},
		{"bad_uuid", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, "Episode", apperr.CodeNotFound, "Episode not found"},
		{"unknown", errors.New("connection reset"), "Anime", apperr.CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, tt.resource, "test_action")

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.message, ae.Message)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

/*
TestWrap_Passthrough keeps nil and already-classified errors untouched.
*/
func TestWrap_Passthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Anime", "noop"))

	original := apperr.Forbidden("nope")
	assert.Same(t, original, dberr.Wrap(original, "Anime", "noop"))
}
