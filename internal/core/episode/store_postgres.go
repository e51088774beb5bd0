// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/database/schema"
	"github.com/taibuivan/anicat/internal/platform/dberr"
)

const resource = "Episode"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed episode store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	selectColumns = schema.List("", schema.CatalogEpisode.Columns()...)

	// Creation order with the time-ordered id as tie-breaker.
	orderAscending = fmt.Sprintf("%s ASC, %s ASC", schema.CatalogEpisode.CreatedAt, schema.CatalogEpisode.ID)
)

func (repository *PostgresRepository) List(context context.Context, seasonID string) ([]*Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns, schema.CatalogEpisode.Table)

	var args []any
	if seasonID != "" {
		query += fmt.Sprintf(` WHERE %s = $1`, schema.CatalogEpisode.SeasonID)
		args = append(args, seasonID)
	}
	query += ` ORDER BY ` + orderAscending

	return repository.queryMany(context, "list_episodes", query, args...)
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogEpisode.Table, schema.CatalogEpisode.ID)

	return repository.queryOne(context, "find_episode_by_id", query, id)
}

func (repository *PostgresRepository) FindByTitleAndSeason(context context.Context, title, seasonID string) (*Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns, schema.CatalogEpisode.Table, schema.CatalogEpisode.Title, schema.CatalogEpisode.SeasonID)

	return repository.queryOne(context, "find_episode_by_title", query, title, seasonID)
}

func (repository *PostgresRepository) Create(context context.Context, episode *Episode) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, schema.CatalogEpisode.Table, selectColumns)

	_, err := repository.pool.Exec(context, query,
		episode.ID,
		episode.Title,
		episode.Link480p,
		episode.Link720p,
		episode.Link1080p,
		episode.SeasonID,
		episode.CreatedAt,
		episode.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resource, "create_episode")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, episode *Episode) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
	`,
		schema.CatalogEpisode.Table,
		schema.CatalogEpisode.Title,
		schema.CatalogEpisode.Link480p,
		schema.CatalogEpisode.Link720p,
		schema.CatalogEpisode.Link1080p,
		schema.CatalogEpisode.UpdatedAt,
		schema.CatalogEpisode.ID,
	)

	result, err := repository.pool.Exec(context, query,
		episode.ID,
		episode.Title,
		episode.Link480p,
		episode.Link720p,
		episode.Link1080p,
		episode.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resource, "update_episode")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogEpisode.Table, schema.CatalogEpisode.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource, "delete_episode")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	return nil
}

func (repository *PostgresRepository) ListBySeasonIDs(context context.Context, seasonIDs []string) ([]*Episode, error) {
	if len(seasonIDs) == 0 {
		return []*Episode{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[]) ORDER BY %s`,
		selectColumns, schema.CatalogEpisode.Table, schema.CatalogEpisode.SeasonID, orderAscending)

	return repository.queryMany(context, "list_episodes_by_seasons", query, seasonIDs)
}

// # Internal Helpers

func (repository *PostgresRepository) queryMany(context context.Context, action, query string, args ...any) ([]*Episode, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	episodes, err := pgx.CollectRows(rows, scanEpisode)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	if episodes == nil {
		episodes = []*Episode{}
	}
	return episodes, nil
}

func (repository *PostgresRepository) queryOne(context context.Context, action, query string, args ...any) (*Episode, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	episode, err := pgx.CollectExactlyOneRow(rows, scanEpisode)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	return episode, nil
}

func scanEpisode(row pgx.CollectableRow) (*Episode, error) {
	episode := &Episode{}
	err := row.Scan(
		&episode.ID,
		&episode.Title,
		&episode.Link480p,
		&episode.Link720p,
		&episode.Link1080p,
		&episode.SeasonID,
		&episode.CreatedAt,
		&episode.UpdatedAt,
	)
	return episode, err
}
