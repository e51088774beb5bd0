package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anicat/internal/platform/database/schema"
)

func TestList(t *testing.T) {
	assert.Equal(t, "id, title", schema.List("", "id", "title"))
	assert.Equal(t, "s.id, s.title, s.anime_id", schema.List("s", "id", "title", "anime_id"))
	assert.Equal(t,
		"id, title, link_480p, link_720p, link_1080p, season_id, created_at, updated_at",
		schema.List("", schema.CatalogEpisode.Columns()...),
	)
}
