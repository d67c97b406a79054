package dto

// ImportRequest: payload for triggering an import batch.
// Format: { "files": [{ "folder": "series", "file": "horus-heresy.json" }, ...] }
type ImportRequest struct {
	Files []ImportFileSelection `json:"files"`
}

// ImportFileSelection names one source document inside the data directory.
type ImportFileSelection struct {
	Folder string `json:"folder"`
	File   string `json:"file"`
}
