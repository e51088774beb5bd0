// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalogtest provides an in-memory catalog for service and HTTP tests.

It reproduces the rules the PostgreSQL schema enforces: unique titles scoped
per parent, unique genre keys, foreign keys, and ON DELETE CASCADE from anime
to seasons to episodes and from both sides of the anime_genre join. Each
entity is exposed through a view that satisfies its package's Repository.

	catalog := catalogtest.New()
	genres := genre.NewService(catalog.Genres(), nil, logger)
*/
package catalogtest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/anicat/internal/core/anime"
	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/internal/core/genre"
	"github.com/taibuivan/anicat/internal/core/season"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/pkg/namekey"
)

type link struct {
	animeID string
	genreID string
}

// Catalog holds every table in memory. It is safe for concurrent use.
type Catalog struct {
	mu sync.Mutex

	seq      int64
	order    map[string]int64
	genres   map[string]genre.Genre
	anime    map[string]anime.Anime
	seasons  map[string]season.Season
	episodes map[string]episode.Episode
	links    []link

	err error
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		order:    make(map[string]int64),
		genres:   make(map[string]genre.Genre),
		anime:    make(map[string]anime.Anime),
		seasons:  make(map[string]season.Season),
		episodes: make(map[string]episode.Episode),
	}
}

// Fail makes every following call return err until Fail(nil).
func (c *Catalog) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Genres returns the genre store view.
func (c *Catalog) Genres() *Genres { return &Genres{c} }

// Anime returns the anime store view.
func (c *Catalog) Anime() *Anime { return &Anime{c} }

// Seasons returns the season store view.
func (c *Catalog) Seasons() *Seasons { return &Seasons{c} }

// Episodes returns the episode store view.
func (c *Catalog) Episodes() *Episodes { return &Episodes{c} }

// Counts reports the number of rows per table, for cascade assertions.
func (c *Catalog) Counts() (genres, animeCount, seasons, episodes, links int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.genres), len(c.anime), len(c.seasons), len(c.episodes), len(c.links)
}

// lock acquires the catalog and reports the injected failure, if any.
func (c *Catalog) lock() error {
	c.mu.Lock()
	return c.err
}

func (c *Catalog) remember(id string) {
	c.seq++
	c.order[id] = c.seq
}

// compare orders rows by creation time, then by insertion sequence.
func (c *Catalog) compare(aID string, aTime time.Time, bID string, bTime time.Time) int {
	if n := aTime.Compare(bTime); n != 0 {
		return n
	}
	return cmp.Compare(c.order[aID], c.order[bID])
}

// cascadeSeason removes a season and its episodes. Caller holds the lock.
func (c *Catalog) cascadeSeason(id string) {
	delete(c.seasons, id)
	for episodeID, e := range c.episodes {
		if e.SeasonID == id {
			delete(c.episodes, episodeID)
		}
	}
}

func (c *Catalog) dropLinks(keep func(link) bool) {
	c.links = slices.DeleteFunc(c.links, func(l link) bool { return !keep(l) })
}

// # Genres

// Genres implements [genre.Repository].
type Genres struct{ c *Catalog }

var _ genre.Repository = (*Genres)(nil)

func (g *Genres) List(context.Context) ([]*genre.Genre, error) {
	if err := g.c.lock(); err != nil {
		defer g.c.mu.Unlock()
		return nil, err
	}
	defer g.c.mu.Unlock()

	result := make([]*genre.Genre, 0, len(g.c.genres))
	for _, row := range g.c.genres {
		row := row
		result = append(result, &row)
	}
	slices.SortFunc(result, func(a, b *genre.Genre) int {
		if n := cmp.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (g *Genres) FindByID(_ context.Context, id string) (*genre.Genre, error) {
	if err := g.c.lock(); err != nil {
		defer g.c.mu.Unlock()
		return nil, err
	}
	defer g.c.mu.Unlock()

	row, ok := g.c.genres[id]
	if !ok {
		return nil, apperr.NotFound("Genre")
	}
	return &row, nil
}

func (g *Genres) FindByName(_ context.Context, name string) (*genre.Genre, error) {
	if err := g.c.lock(); err != nil {
		defer g.c.mu.Unlock()
		return nil, err
	}
	defer g.c.mu.Unlock()

	if row, ok := g.findByKey(namekey.Key(name)); ok {
		return &row, nil
	}
	return nil, apperr.NotFound("Genre")
}

func (g *Genres) Create(_ context.Context, row *genre.Genre) error {
	if err := g.c.lock(); err != nil {
		defer g.c.mu.Unlock()
		return err
	}
	defer g.c.mu.Unlock()

	if _, ok := g.findByKey(namekey.Key(row.Name)); ok {
		return apperr.Conflict("Genre already exists")
	}
	g.c.genres[row.ID] = *row
	g.c.remember(row.ID)
	return nil
}

func (g *Genres) GetOrCreateByName(_ context.Context, candidate *genre.Genre) (*genre.Genre, bool, error) {
	if err := g.c.lock(); err != nil {
		defer g.c.mu.Unlock()
		return nil, false, err
	}
	defer g.c.mu.Unlock()

	if row, ok := g.findByKey(namekey.Key(candidate.Name)); ok {
		return &row, false, nil
	}
	g.c.genres[candidate.ID] = *candidate
	g.c.remember(candidate.ID)

	row := *candidate
	return &row, true, nil
}

func (g *Genres) Delete(_ context.Context, id string) error {
	if err := g.c.lock(); err != nil {
		defer g.c.mu.Unlock()
		return err
	}
	defer g.c.mu.Unlock()

	if _, ok := g.c.genres[id]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(g.c.genres, id)
	g.c.dropLinks(func(l link) bool { return l.genreID != id })
	return nil
}

func (g *Genres) findByKey(key string) (genre.Genre, bool) {
	for _, row := range g.c.genres {
		if namekey.Key(row.Name) == key {
			return row, true
		}
	}
	return genre.Genre{}, false
}

// # Anime

// Anime implements [anime.Repository] and [season.AnimeLookup].
type Anime struct{ c *Catalog }

var _ anime.Repository = (*Anime)(nil)

func (a *Anime) List(_ context.Context, search string) ([]*anime.Anime, error) {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return nil, err
	}
	defer a.c.mu.Unlock()

	needle := strings.ToLower(search)
	result := make([]*anime.Anime, 0, len(a.c.anime))
	for _, row := range a.c.anime {
		if needle != "" && !strings.Contains(strings.ToLower(row.Title), needle) {
			continue
		}
		row := row
		result = append(result, &row)
	}
	slices.SortFunc(result, func(x, y *anime.Anime) int {
		return a.c.compare(y.ID, y.CreatedAt, x.ID, x.CreatedAt)
	})
	return result, nil
}

func (a *Anime) FindByID(_ context.Context, id string) (*anime.Anime, error) {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return nil, err
	}
	defer a.c.mu.Unlock()

	row, ok := a.c.anime[id]
	if !ok {
		return nil, apperr.NotFound("Anime")
	}
	return &row, nil
}

func (a *Anime) FindByTitle(_ context.Context, title string) (*anime.Anime, error) {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return nil, err
	}
	defer a.c.mu.Unlock()

	for _, row := range a.c.anime {
		if row.Title == title {
			return &row, nil
		}
	}
	return nil, apperr.NotFound("Anime")
}

func (a *Anime) Exists(_ context.Context, id string) (bool, error) {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return false, err
	}
	defer a.c.mu.Unlock()

	_, ok := a.c.anime[id]
	return ok, nil
}

func (a *Anime) Create(_ context.Context, row *anime.Anime, genreIDs []string) error {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return err
	}
	defer a.c.mu.Unlock()

	for _, existing := range a.c.anime {
		if existing.Title == row.Title {
			return apperr.Conflict("Anime already exists")
		}
	}
	if err := a.checkGenres(genreIDs); err != nil {
		return err
	}

	stored := *row
	stored.Genres, stored.Seasons = nil, nil
	a.c.anime[row.ID] = stored
	a.c.remember(row.ID)
	a.setGenres(row.ID, genreIDs)
	return nil
}

func (a *Anime) Update(_ context.Context, row *anime.Anime, genreIDs []string) error {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return err
	}
	defer a.c.mu.Unlock()

	if _, ok := a.c.anime[row.ID]; !ok {
		return apperr.NotFound("Anime")
	}
	for _, existing := range a.c.anime {
		if existing.Title == row.Title && existing.ID != row.ID {
			return apperr.Conflict("Anime already exists")
		}
	}
	if err := a.checkGenres(genreIDs); err != nil {
		return err
	}

	stored := *row
	stored.Genres, stored.Seasons = nil, nil
	a.c.anime[row.ID] = stored
	if genreIDs != nil {
		a.setGenres(row.ID, genreIDs)
	}
	return nil
}

func (a *Anime) Delete(_ context.Context, id string) error {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return err
	}
	defer a.c.mu.Unlock()

	if _, ok := a.c.anime[id]; !ok {
		return apperr.NotFound("Anime")
	}
	delete(a.c.anime, id)
	for seasonID, s := range a.c.seasons {
		if s.AnimeID == id {
			a.c.cascadeSeason(seasonID)
		}
	}
	a.c.dropLinks(func(l link) bool { return l.animeID != id })
	return nil
}

func (a *Anime) ListGenreLinks(_ context.Context, animeIDs []string) ([]anime.GenreLink, error) {
	if err := a.c.lock(); err != nil {
		defer a.c.mu.Unlock()
		return nil, err
	}
	defer a.c.mu.Unlock()

	result := []anime.GenreLink{}
	for _, l := range a.c.links {
		if !slices.Contains(animeIDs, l.animeID) {
			continue
		}
		row := a.c.genres[l.genreID]
		result = append(result, anime.GenreLink{
			AnimeID: l.animeID,
			Genre:   anime.GenreRef{ID: row.ID, Name: row.Name},
		})
	}
	slices.SortStableFunc(result, func(x, y anime.GenreLink) int { return cmp.Compare(x.Genre.Name, y.Genre.Name) })
	return result, nil
}

func (a *Anime) checkGenres(genreIDs []string) error {
	for _, id := range genreIDs {
		if _, ok := a.c.genres[id]; !ok {
			return apperr.NotFound("Genre")
		}
	}
	return nil
}

func (a *Anime) setGenres(animeID string, genreIDs []string) {
	a.c.dropLinks(func(l link) bool { return l.animeID != animeID })
	for _, id := range genreIDs {
		candidate := link{animeID: animeID, genreID: id}
		if !slices.Contains(a.c.links, candidate) {
			a.c.links = append(a.c.links, candidate)
		}
	}
}

// # Seasons

// Seasons implements [season.Repository] and [episode.SeasonLookup].
type Seasons struct{ c *Catalog }

var _ season.Repository = (*Seasons)(nil)

func (s *Seasons) List(_ context.Context, animeID string) ([]*season.Season, error) {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return nil, err
	}
	defer s.c.mu.Unlock()

	result := s.collect(func(row season.Season) bool { return animeID == "" || row.AnimeID == animeID })
	slices.SortFunc(result, func(x, y *season.Season) int {
		return s.c.compare(y.ID, y.CreatedAt, x.ID, x.CreatedAt)
	})
	return result, nil
}

func (s *Seasons) FindByID(_ context.Context, id string) (*season.Season, error) {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return nil, err
	}
	defer s.c.mu.Unlock()

	row, ok := s.c.seasons[id]
	if !ok {
		return nil, apperr.NotFound("Season")
	}
	return &row, nil
}

func (s *Seasons) FindByTitleAndAnime(_ context.Context, title, animeID string) (*season.Season, error) {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return nil, err
	}
	defer s.c.mu.Unlock()

	for _, row := range s.c.seasons {
		if row.Title == title && row.AnimeID == animeID {
			return &row, nil
		}
	}
	return nil, apperr.NotFound("Season")
}

func (s *Seasons) Exists(_ context.Context, id string) (bool, error) {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return false, err
	}
	defer s.c.mu.Unlock()

	_, ok := s.c.seasons[id]
	return ok, nil
}

func (s *Seasons) Create(_ context.Context, row *season.Season) error {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return err
	}
	defer s.c.mu.Unlock()

	if _, ok := s.c.anime[row.AnimeID]; !ok {
		return apperr.NotFound("Anime")
	}
	if s.titleTaken(row) {
		return apperr.Conflict("Season already exists")
	}

	stored := *row
	stored.Episodes = nil
	s.c.seasons[row.ID] = stored
	s.c.remember(row.ID)
	return nil
}

func (s *Seasons) Update(_ context.Context, row *season.Season) error {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return err
	}
	defer s.c.mu.Unlock()

	current, ok := s.c.seasons[row.ID]
	if !ok {
		return apperr.NotFound("Season")
	}
	current.Title = row.Title
	current.UpdatedAt = row.UpdatedAt
	if s.titleTaken(&current) {
		return apperr.Conflict("Season already exists")
	}
	s.c.seasons[row.ID] = current
	return nil
}

func (s *Seasons) Delete(_ context.Context, id string) error {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return err
	}
	defer s.c.mu.Unlock()

	if _, ok := s.c.seasons[id]; !ok {
		return apperr.NotFound("Season")
	}
	s.c.cascadeSeason(id)
	return nil
}

func (s *Seasons) ListByAnimeIDs(_ context.Context, animeIDs []string) ([]*season.Season, error) {
	if err := s.c.lock(); err != nil {
		defer s.c.mu.Unlock()
		return nil, err
	}
	defer s.c.mu.Unlock()

	result := s.collect(func(row season.Season) bool { return slices.Contains(animeIDs, row.AnimeID) })
	slices.SortFunc(result, func(x, y *season.Season) int {
		return s.c.compare(x.ID, x.CreatedAt, y.ID, y.CreatedAt)
	})
	return result, nil
}

func (s *Seasons) collect(keep func(season.Season) bool) []*season.Season {
	result := []*season.Season{}
	for _, row := range s.c.seasons {
		if keep(row) {
			row := row
			result = append(result, &row)
		}
	}
	return result
}

func (s *Seasons) titleTaken(row *season.Season) bool {
	for _, existing := range s.c.seasons {
		if existing.ID != row.ID && existing.AnimeID == row.AnimeID && existing.Title == row.Title {
			return true
		}
	}
	return false
}

// # Episodes

// Episodes implements [episode.Repository] and [season.EpisodeLister].
type Episodes struct{ c *Catalog }

var _ episode.Repository = (*Episodes)(nil)

func (e *Episodes) List(_ context.Context, seasonID string) ([]*episode.Episode, error) {
	if err := e.c.lock(); err != nil {
		defer e.c.mu.Unlock()
		return nil, err
	}
	defer e.c.mu.Unlock()

	return e.collect(func(row episode.Episode) bool { return seasonID == "" || row.SeasonID == seasonID }), nil
}

func (e *Episodes) FindByID(_ context.Context, id string) (*episode.Episode, error) {
	if err := e.c.lock(); err != nil {
		defer e.c.mu.Unlock()
		return nil, err
	}
	defer e.c.mu.Unlock()

	row, ok := e.c.episodes[id]
	if !ok {
		return nil, apperr.NotFound("Episode")
	}
	return &row, nil
}

func (e *Episodes) FindByTitleAndSeason(_ context.Context, title, seasonID string) (*episode.Episode, error) {
	if err := e.c.lock(); err != nil {
		defer e.c.mu.Unlock()
		return nil, err
	}
	defer e.c.mu.Unlock()

	for _, row := range e.c.episodes {
		if row.Title == title && row.SeasonID == seasonID {
			return &row, nil
		}
	}
	return nil, apperr.NotFound("Episode")
}

func (e *Episodes) Create(_ context.Context, row *episode.Episode) error {
	if err := e.c.lock(); err != nil {
		defer e.c.mu.Unlock()
		return err
	}
	defer e.c.mu.Unlock()

	if _, ok := e.c.seasons[row.SeasonID]; !ok {
		return apperr.NotFound("Season")
	}
	if e.titleTaken(row) {
		return apperr.Conflict("Episode already exists")
	}
	e.c.episodes[row.ID] = *row
	e.c.remember(row.ID)
	return nil
}

func (e *Episodes) Update(_ context.Context, row *episode.Episode) error {
	if err := e.c.lock(); err != nil {
		defer e.c.mu.Unlock()
		return err
	}
	defer e.c.mu.Unlock()

	current, ok := e.c.episodes[row.ID]
	if !ok {
		return apperr.NotFound("Episode")
	}
	current.Title = row.Title
	current.Link480p = row.Link480p
	current.Link720p = row.Link720p
	current.Link1080p = row.Link1080p
	current.UpdatedAt = row.UpdatedAt
	if e.titleTaken(&current) {
		return apperr.Conflict("Episode already exists")
	}
	e.c.episodes[row.ID] = current
	return nil
}

func (e *Episodes) Delete(_ context.Context, id string) error {
	if err := e.c.lock(); err != nil {
		defer e.c.mu.Unlock()
		return err
	}
	defer e.c.mu.Unlock()

	if _, ok := e.c.episodes[id]; !ok {
		return apperr.NotFound("Episode")
	}
	delete(e.c.episodes, id)
	return nil
}

func (e *Episodes) ListBySeasonIDs(_ context.Context, seasonIDs []string) ([]*episode.Episode, error) {
	if err := e.c.lock(); err != nil {
		defer e.c.mu.Unlock()
		return nil, err
	}
	defer e.c.mu.Unlock()

	return e.collect(func(row episode.Episode) bool { return slices.Contains(seasonIDs, row.SeasonID) }), nil
}

// collect returns matching episodes oldest first.
func (e *Episodes) collect(keep func(episode.Episode) bool) []*episode.Episode {
	result := []*episode.Episode{}
	for _, row := range e.c.episodes {
		if keep(row) {
			row := row
			result = append(result, &row)
		}
	}
	slices.SortFunc(result, func(x, y *episode.Episode) int {
		return e.c.compare(x.ID, x.CreatedAt, y.ID, y.CreatedAt)
	})
	return result
}

func (e *Episodes) titleTaken(row *episode.Episode) bool {
	for _, existing := range e.c.episodes {
		if existing.ID != row.ID && existing.SeasonID == row.SeasonID && existing.Title == row.Title {
			return true
		}
	}
	return false
}
