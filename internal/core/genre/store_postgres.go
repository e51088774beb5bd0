// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/database/schema"
	"github.com/taibuivan/anicat/internal/platform/dberr"
	"github.com/taibuivan/anicat/pkg/namekey"
)

const resource = "Genre"

// PostgresRepository implements [Repository] on catalog.genre.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed genre store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = schema.List("", schema.CatalogGenre.Columns()...)

func (repository *PostgresRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		selectColumns, schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "list_genres")
	}

	genres, err := pgx.CollectRows(rows, scanGenre)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "scan_genres")
	}

	return genres, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	return repository.findOne(context, "find_genre_by_id", query, id)
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogGenre.Table, schema.CatalogGenre.NameKey)

	return repository.findOne(context, "find_genre_by_name", query, namekey.Key(name))
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.NameKey,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
	)

	_, err := repository.db.Exec(context, query,
		genre.ID, genre.Name, namekey.Key(genre.Name), genre.CreatedAt, genre.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource, "create_genre")
	}

	return nil
}

/*
GetOrCreateByName upserts on the matching key.

The DO UPDATE branch rewrites name_key with its own value so RETURNING yields
the existing row untouched; xmax = 0 only holds for a freshly inserted tuple.
*/
func (repository *PostgresRepository) GetOrCreateByName(context context.Context, candidate *Genre) (*Genre, bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%[4]s) DO UPDATE SET %[4]s = EXCLUDED.%[4]s
		RETURNING %[7]s, (xmax = 0) AS inserted
	`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.NameKey,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
		selectColumns,
	)

	genre := &Genre{}
	var inserted bool

	err := repository.db.QueryRow(context, query,
		candidate.ID, candidate.Name, namekey.Key(candidate.Name), candidate.CreatedAt, candidate.UpdatedAt,
	).Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt, &inserted)
	if err != nil {
		return nil, false, dberr.Wrap(err, resource, "get_or_create_genre")
	}

	return genre, inserted, nil
}

// Delete removes the genre; anime_genre rows go with it through ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource, "delete_genre")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	return nil
}

func (repository *PostgresRepository) findOne(context context.Context, action, query string, arg any) (*Genre, error) {
	rows, err := repository.db.Query(context, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	genre, err := pgx.CollectExactlyOneRow(rows, scanGenre)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	return genre, nil
}

func scanGenre(row pgx.CollectableRow) (*Genre, error) {
	genre := &Genre{}
	err := row.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt)
	return genre, err
}
