package schema

// CatalogAnimeTable represents the 'catalog.anime' table
type CatalogAnimeTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Poster      string
	AllDetails  string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogAnime is the schema definition for catalog.anime
var CatalogAnime = CatalogAnimeTable{
	Table:       "catalog.anime",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Poster:      "poster",
	AllDetails:  "all_details",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names
func (t CatalogAnimeTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.Poster, t.AllDetails, t.CreatedAt, t.UpdatedAt}
}
