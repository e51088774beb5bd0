// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/anicat/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// resource names the entity the query was about ("Anime", "Season") and is
// used for NotFound and Conflict messages. action is recorded in the cause for
// server-side logs only.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// Already classified
	if apperr.IsAppError(err) {
		return err
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(cause)
	}

	// 2. Constraint violations
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists").WithCause(cause)
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(referencedResource(resource)).WithCause(cause)
		case pgerrcode.NotNullViolation, pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError("Invalid " + resource + " data").WithCause(cause)
		case pgerrcode.InvalidTextRepresentation:
			// Malformed UUID literals never match a row.
			return apperr.NotFound(resource).WithCause(cause)
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(cause)
}

// referencedResource names the parent entity of a child resource so that a
// dangling foreign key reads as "Season not found" when creating an Episode.
func referencedResource(resource string) string {
	switch resource {
	case "Episode":
		return "Season"
	case "Season":
		return "Anime"
	case "AnimeGenre":
		return "Genre"
	default:
		return resource
	}
}
