package catalog

// Source document shapes. One JSON file per catalog entry: series documents
// carry their books inline, the other three folders hold one item per file.

// SeriesDocument mirrors one data/series/*.json file.
type SeriesDocument struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Books       []BookEntry `json:"books"`
}

// BookEntry is one book inside a series document.
type BookEntry struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	OrderInSeries int      `json:"orderInSeries"`
	Faction       []string `json:"faction"`
	Tags          []string `json:"tags"`
}

// ItemDocument mirrors one data/{singles,novellas,anthologies}/*.json file.
type ItemDocument struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Faction []string `json:"faction"`
	Tags    []string `json:"tags"`
}

// Folder names the import pipeline dispatches on.
const (
	FolderSeries      = "series"
	FolderSingles     = "singles"
	FolderNovellas    = "novellas"
	FolderAnthologies = "anthologies"
)

// Folders lists the category folders in scan order.
var Folders = []string{FolderSeries, FolderSingles, FolderNovellas, FolderAnthologies}
