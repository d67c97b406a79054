package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"bookhub/internal/catalog"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
)

// FileSelection names one source document to import.
type FileSelection struct {
	Folder string `json:"folder"`
	File   string `json:"file"`
}

// ImportCounts are the per-category tallies of successful upserts, plus the
// per-file and per-row error strings collected along the way.
type ImportCounts struct {
	Series      int      `json:"series"`
	Books       int      `json:"books"`
	Singles     int      `json:"singles"`
	Novellas    int      `json:"novellas"`
	Anthologies int      `json:"anthologies"`
	Errors      []string `json:"errors"`
}

// ImportResult is the whole-batch outcome. Success is false only for
// precondition failures (nothing selected); individual file and row failures
// ride along in Results.Errors with Success still true.
type ImportResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	Results *ImportCounts `json:"results,omitempty"`
}

type ImportService interface {
	ImportBatch(ctx context.Context, selections []FileSelection) (*ImportResult, error)
	ListImportableFiles() (map[string][]string, error)
}

type importService struct {
	source   *catalog.Source
	vocabs   *catalog.VocabStore
	itemRepo repository.ItemRepository
	catalog  CatalogService
	logger   *slog.Logger
}

func NewImportService(
	source *catalog.Source,
	vocabs *catalog.VocabStore,
	itemRepo repository.ItemRepository,
	catalogService CatalogService,
	logger *slog.Logger,
) ImportService {
	return &importService{
		source:   source,
		vocabs:   vocabs,
		itemRepo: itemRepo,
		catalog:  catalogService,
		logger:   logger,
	}
}

func (s *importService) ListImportableFiles() (map[string][]string, error) {
	return s.source.ListFiles()
}

// ImportBatch processes the selected source documents one at a time. A file
// that fails to read, parse or upsert records an error string and the batch
// moves on; only an empty selection or an unreachable vocabulary store stops
// the whole run.
//
// The vocabulary lock is held for the entire batch, so the canonical label
// read-modify-write cannot lose labels to a concurrent import.
func (s *importService) ImportBatch(ctx context.Context, selections []FileSelection) (*ImportResult, error) {
	if len(selections) == 0 {
		return &ImportResult{
			Success: false,
			Error:   "No files selected for import",
		}, nil
	}

	if err := s.vocabs.Lock(ctx); err != nil {
		return nil, err
	}
	defer s.vocabs.Unlock()

	tagLabels, err := s.vocabs.Load(catalog.TagsFile)
	if err != nil {
		return nil, err
	}
	factionLabels, err := s.vocabs.Load(catalog.FactionsFile)
	if err != nil {
		return nil, err
	}
	tags := catalog.NewVocabulary(tagLabels)
	factions := catalog.NewVocabulary(factionLabels)

	counts := &ImportCounts{Errors: []string{}}

	for _, sel := range selections {
		s.importOne(ctx, sel, tags, factions, counts)
	}

	if tags.Changed() {
		if err := s.vocabs.Save(catalog.TagsFile, tags.Labels()); err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("Tags list: %v", err))
		}
	}
	if factions.Changed() {
		if err := s.vocabs.Save(catalog.FactionsFile, factions.Labels()); err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("Factions list: %v", err))
		}
	}

	total := counts.Series + counts.Books + counts.Singles + counts.Novellas + counts.Anthologies
	if total > 0 {
		s.catalog.InvalidateLabelCache(ctx)
	}

	s.logger.Info("import batch finished",
		"files", len(selections),
		"imported", total,
		"errors", len(counts.Errors))

	return &ImportResult{
		Success: true,
		Message: summaryMessage(counts),
		Results: counts,
	}, nil
}

func (s *importService) importOne(ctx context.Context, sel FileSelection, tags, factions *catalog.Vocabulary, counts *ImportCounts) {
	fileErr := func(err error) {
		counts.Errors = append(counts.Errors, fmt.Sprintf("File %s/%s: %v", sel.Folder, sel.File, err))
	}

	data, err := s.source.ReadDocument(sel.Folder, sel.File)
	if err != nil {
		fileErr(err)
		return
	}

	switch sel.Folder {
	case catalog.FolderSeries:
		var doc catalog.SeriesDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			fileErr(err)
			return
		}
		s.importSeries(ctx, &doc, tags, factions, counts)

	case catalog.FolderSingles, catalog.FolderNovellas, catalog.FolderAnthologies:
		var doc catalog.ItemDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			fileErr(err)
			return
		}
		item := &models.Item{
			ID:       doc.ID,
			Category: folderCategory(sel.Folder),
			Title:    doc.Title,
			Author:   doc.Author,
			Faction:  factions.CanonicalizeAll(doc.Faction),
			Tags:     tags.CanonicalizeAll(doc.Tags),
		}
		if err := s.itemRepo.UpsertItem(ctx, item); err != nil {
			fileErr(err)
			return
		}
		switch sel.Folder {
		case catalog.FolderSingles:
			counts.Singles++
		case catalog.FolderNovellas:
			counts.Novellas++
		case catalog.FolderAnthologies:
			counts.Anthologies++
		}

	default:
		fileErr(fmt.Errorf("unknown folder"))
	}
}

// importSeries upserts the series row and then its books. A series-row
// failure skips the file's books; a book-row failure records an error and
// continues with the remaining books.
func (s *importService) importSeries(ctx context.Context, doc *catalog.SeriesDocument, tags, factions *catalog.Vocabulary, counts *ImportCounts) {
	series := &models.Series{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
	}
	if err := s.itemRepo.UpsertSeries(ctx, series); err != nil {
		counts.Errors = append(counts.Errors, fmt.Sprintf("Series %s: %v", doc.ID, err))
		return
	}
	counts.Series++

	for _, book := range doc.Books {
		order := book.OrderInSeries
		item := &models.Item{
			ID:            book.ID,
			Category:      models.CategorySeriesBook,
			Title:         book.Title,
			Author:        book.Author,
			SeriesID:      &doc.ID,
			OrderInSeries: &order,
			Faction:       factions.CanonicalizeAll(book.Faction),
			Tags:          tags.CanonicalizeAll(book.Tags),
		}
		if err := s.itemRepo.UpsertItem(ctx, item); err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("Book %s: %v", book.ID, err))
			continue
		}
		counts.Books++
	}
}

func folderCategory(folder string) models.Category {
	switch folder {
	case catalog.FolderSingles:
		return models.CategorySingle
	case catalog.FolderNovellas:
		return models.CategoryNovella
	case catalog.FolderAnthologies:
		return models.CategoryAnthology
	default:
		return models.CategorySeriesBook
	}
}

// summaryMessage lists the non-zero counts, or reports that nothing was
// imported.
func summaryMessage(counts *ImportCounts) string {
	var parts []string
	add := func(n int, unit string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, unit))
		}
	}
	add(counts.Series, "series")
	add(counts.Books, "books")
	add(counts.Singles, "singles")
	add(counts.Novellas, "novellas")
	add(counts.Anthologies, "anthologies")

	if len(parts) == 0 {
		return "No items imported"
	}
	return "Import completed: " + strings.Join(parts, ", ")
}
