// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/database/schema"
	"github.com/taibuivan/anicat/internal/platform/dberr"
	"github.com/taibuivan/anicat/pkg/uuid"
)

const resource = "Anime"

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed anime store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = schema.List("", schema.CatalogAnime.Columns()...)

// likeEscaper neutralises LIKE wildcards in user search input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// # Lookups

/*
List returns anime newest first.

Description: search is matched as a case-insensitive substring of the title.
Wildcards typed by the user are escaped so "100%" matches literally.
*/
func (repository *PostgresRepository) List(context context.Context, search string) ([]*Anime, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s`, selectColumns, schema.CatalogAnime.Table))

	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(` WHERE %s ILIKE $1 ESCAPE '\'`, schema.CatalogAnime.Title))
		args = append(args, "%"+likeEscaper.Replace(search)+"%")
	}

	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY %s DESC, %s DESC`, schema.CatalogAnime.CreatedAt, schema.CatalogAnime.ID))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "list_anime")
	}

	list, err := pgx.CollectRows(rows, scanAnime)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "scan_anime")
	}

	return list, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Anime, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogAnime.Table, schema.CatalogAnime.ID)

	return repository.queryOne(context, "find_anime_by_id", query, id)
}

func (repository *PostgresRepository) FindByTitle(context context.Context, title string) (*Anime, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CatalogAnime.Table, schema.CatalogAnime.Title)

	return repository.queryOne(context, "find_anime_by_title", query, title)
}

func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	if !uuid.Valid(id) {
		return false, nil
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogAnime.Table, schema.CatalogAnime.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resource, "anime_exists")
	}

	return exists, nil
}

/*
ListGenreLinks joins anime_genre with genre for a batch of anime.

Returns:
  - []GenreLink: Links ordered by genre name within the batch
  - error: Storage failures
*/
func (repository *PostgresRepository) ListGenreLinks(context context.Context, animeIDs []string) ([]GenreLink, error) {
	if len(animeIDs) == 0 {
		return []GenreLink{}, nil
	}

	query := fmt.Sprintf(`
		SELECT ag.%s, g.%s, g.%s
		FROM %s ag
		JOIN %s g ON g.%s = ag.%s
		WHERE ag.%s = ANY($1::uuid[])
		ORDER BY g.%s ASC
	`,
		schema.CatalogAnimeGenre.AnimeID, schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogAnimeGenre.Table,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogAnimeGenre.GenreID,
		schema.CatalogAnimeGenre.AnimeID,
		schema.CatalogGenre.Name,
	)

	rows, err := repository.pool.Query(context, query, animeIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "AnimeGenre", "list_genre_links")
	}

	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (GenreLink, error) {
		var link GenreLink
		err := row.Scan(&link.AnimeID, &link.Genre.ID, &link.Genre.Name)
		return link, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "AnimeGenre", "scan_genre_links")
	}

	return links, nil
}

// # Mutations

/*
Create persists a new anime and its genre links.

Description: Executes both inserts within a single transaction so a failed
link never leaves a half-written anime behind.
*/
func (repository *PostgresRepository) Create(context context.Context, anime *Anime, genreIDs []string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resource, "begin_create_anime")
	}
	defer func() { _ = transaction.Rollback(context) }()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.CatalogAnime.Table, selectColumns)

	_, err = transaction.Exec(context, query,
		anime.ID,
		anime.Title,
		anime.Description,
		anime.Poster,
		anime.AllDetails,
		anime.CreatedAt,
		anime.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resource, "create_anime")
	}

	if err := repository.setGenres(context, transaction, anime.ID, genreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, resource, "commit_create_anime")
	}

	return nil
}

/*
Update rewrites the scalar columns and, when requested, the genre link set.

Description: Both steps share one transaction. A missing row is reported
before any link is touched.
*/
func (repository *PostgresRepository) Update(context context.Context, anime *Anime, genreIDs []string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resource, "begin_update_anime")
	}
	defer func() { _ = transaction.Rollback(context) }()

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
	`,
		schema.CatalogAnime.Table,
		schema.CatalogAnime.Title,
		schema.CatalogAnime.Description,
		schema.CatalogAnime.Poster,
		schema.CatalogAnime.AllDetails,
		schema.CatalogAnime.UpdatedAt,
		schema.CatalogAnime.ID,
	)

	result, err := transaction.Exec(context, query,
		anime.ID,
		anime.Title,
		anime.Description,
		anime.Poster,
		anime.AllDetails,
		anime.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resource, "update_anime")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	if genreIDs != nil {
		if err := repository.setGenres(context, transaction, anime.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, resource, "commit_update_anime")
	}

	return nil
}

// Delete removes the anime row. Seasons, episodes and genre links are removed
// by ON DELETE CASCADE within the same statement.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogAnime.Table, schema.CatalogAnime.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource, "delete_anime")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	return nil
}

/*
setGenres replaces the genre links of one anime.

Description: Clear and insert. Existing rows for the anime are deleted, then
the new set is queued on a pgx.Batch and sent in one round trip.
*/
func (repository *PostgresRepository) setGenres(context context.Context, transaction pgx.Tx, animeID string, genreIDs []string) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogAnimeGenre.Table, schema.CatalogAnimeGenre.AnimeID)

	if _, err := transaction.Exec(context, deleteQuery, animeID); err != nil {
		return dberr.Wrap(err, "AnimeGenre", "clear_genre_links")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CatalogAnimeGenre.Table, schema.CatalogAnimeGenre.AnimeID, schema.CatalogAnimeGenre.GenreID)

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, animeID, genreID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "AnimeGenre", "insert_genre_links")
	}

	return nil
}

func (repository *PostgresRepository) queryOne(context context.Context, action, query string, args ...any) (*Anime, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	anime, err := pgx.CollectExactlyOneRow(rows, scanAnime)
	if err != nil {
		return nil, dberr.Wrap(err, resource, action)
	}

	return anime, nil
}

func scanAnime(row pgx.CollectableRow) (*Anime, error) {
	anime := &Anime{}
	err := row.Scan(
		&anime.ID,
		&anime.Title,
		&anime.Description,
		&anime.Poster,
		&anime.AllDetails,
		&anime.CreatedAt,
		&anime.UpdatedAt,
	)
	return anime, err
}
