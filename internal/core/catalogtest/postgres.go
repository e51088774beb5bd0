// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalogtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/platform/migration"
	"github.com/taibuivan/anicat/internal/platform/postgres"
	"github.com/taibuivan/anicat/pkg/uuid"
)

// EnvDatabaseURL names the PostgreSQL DSN used by store tests.
const EnvDatabaseURL = "TEST_DATABASE_URL"

/*
Postgres returns a pool on a migrated test database, closed at cleanup.

Description: the test is skipped when TEST_DATABASE_URL is unset. Tables are
shared between packages running in parallel, so callers name their rows with
[Unique] instead of truncating.
*/
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	require.NoError(t, migration.RunUp(dsn, migrationsPath(t), Logger()))

	pool, err := postgres.NewPool(context.Background(), dsn, Logger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Unique appends a random suffix to label.
func Unique(label string) string {
	id := uuid.New()
	return label + " " + id[len(id)-12:]
}

// migrationsPath resolves data/migrations from this file, since tests run in
// their own package directory.
func migrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data", "migrations")
}
