// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package season

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/database/schema"
	"github.com/taibuivan/anicat/internal/platform/dberr"
	"github.com/taibuivan/anicat/pkg/uuid"
)

const resource = "Season"

// PostgresRepository implements [Repository] on catalog.season.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed season store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = schema.List("", schema.CatalogSeason.Columns()...)

func (repository *PostgresRepository) List(context context.Context, animeID string) ([]*Season, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns, schema.CatalogSeason.Table)

	var args []any
	if animeID != "" {
		query += fmt.Sprintf(` WHERE %s = $1`, schema.CatalogSeason.AnimeID)
		args = append(args, animeID)
	}
	query += fmt.Sprintf(` ORDER BY %s DESC, %s DESC`, schema.CatalogSeason.CreatedAt, schema.CatalogSeason.ID)

	return repository.queryMany(context, "list_seasons", query, args...)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Season, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogSeason.Table, schema.CatalogSeason.ID)

	return repository.queryOne(context, "find_season_by_id", query, id)
}

func (repository *PostgresRepository) FindByTitleAndAnime(context context.Context, title, animeID string) (*Season, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns, schema.CatalogSeason.Table, schema.CatalogSeason.Title, schema.CatalogSeason.AnimeID)

	return repository.queryOne(context, "find_season_by_title", query, title, animeID)
}

func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	if !uuid.Valid(id) {
		return false, nil
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogSeason.Table, schema.CatalogSeason.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resource, "season_exists")
	}

	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, season *Season) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		schema.CatalogSeason.Table, selectColumns)

	_, err := repository.pool.Exec(context, query,
		season.ID, season.Title, season.AnimeID, season.CreatedAt, season.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource, "create_season")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, season *Season) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.CatalogSeason.Table, schema.CatalogSeason.Title, schema.CatalogSeason.UpdatedAt, schema.CatalogSeason.ID)

	result, err := repository.pool.Exec(context, query, season.ID, season.Title, season.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource, "update_season")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	return nil
}

// Delete removes one season row; catalog.episode rows follow via ON DELETE CASCADE
// inside the same statement.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogSeason.Table, schema.CatalogSeason.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource, "delete_season")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	return nil
}

func (repository *PostgresRepository) ListByAnimeIDs(context context.Context, animeIDs []string) ([]*Season, error) {
	if len(animeIDs) == 0 {
		return []*Season{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[]) ORDER BY %s ASC, %s ASC`,
		selectColumns, schema.CatalogSeason.Table, schema.CatalogSeason.AnimeID,
		schema.CatalogSeason.CreatedAt, schema.CatalogSeason.ID)

	return repository.queryMany(context, "list_seasons_by_anime", query, animeIDs)
}

func (repository *PostgresRepository) queryMany(context context.Context, action, query string, args ...any) ([]*Season, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	seasons, err := pgx.CollectRows(rows, scanSeason)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	return seasons, nil
}

func (repository *PostgresRepository) queryOne(context context.Context, action, query string, args ...any) (*Season, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	season, err := pgx.CollectExactlyOneRow(rows, scanSeason)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	return season, nil
}

func scanSeason(row pgx.CollectableRow) (*Season, error) {
	season := &Season{}
	err := row.Scan(&season.ID, &season.Title, &season.AnimeID, &season.CreatedAt, &season.UpdatedAt)
	return season, err
}
