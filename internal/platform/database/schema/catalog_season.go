package schema

// CatalogSeasonTable represents the 'catalog.season' table
type CatalogSeasonTable struct {
	Table     string
	ID        string
	Title     string
	AnimeID   string
	CreatedAt string
	UpdatedAt string
}

// CatalogSeason is the schema definition for catalog.season
var CatalogSeason = CatalogSeasonTable{
	Table:     "catalog.season",
	ID:        "id",
	Title:     "title",
	AnimeID:   "anime_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t CatalogSeasonTable) Columns() []string {
	return []string{t.ID, t.Title, t.AnimeID, t.CreatedAt, t.UpdatedAt}
}
