package schema

// CatalogEpisodeTable represents the 'catalog.episode' table
type CatalogEpisodeTable struct {
	Table     string
	ID        string
	Title     string
	Link480p  string
	Link720p  string
	Link1080p string
	SeasonID  string
	CreatedAt string
	UpdatedAt string
}

// CatalogEpisode is the schema definition for catalog.episode
var CatalogEpisode = CatalogEpisodeTable{
	Table:     "catalog.episode",
	ID:        "id",
	Title:     "title",
	Link480p:  "link_480p",
	Link720p:  "link_720p",
	Link1080p: "link_1080p",
	SeasonID:  "season_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t CatalogEpisodeTable) Columns() []string {
	return []string{t.ID, t.Title, t.Link480p, t.Link720p, t.Link1080p, t.SeasonID, t.CreatedAt, t.UpdatedAt}
}
