// Package importer bulk-captures words from xlsx or csv files.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lexmora/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column order of an import file
const (
	colWord = iota
	colSourceURL
	colPartOfSpeech
	colDefinition
	colExample
)

// Capturer stores a captured word; implemented by service.WordService
type Capturer interface {
	Capture(ctx context.Context, word, sourceURL string, meanings []domain.Meaning) (*domain.Word, bool, error)
}

// Config defines how an import file is read
type Config struct {
	SheetName string // Excel sheet, the first sheet when empty
	StartRow  int    // 1-based row to start importing from
}

// DefaultConfig skips the header row of the first sheet
func DefaultConfig() Config {
	return Config{StartRow: 2}
}

// Result holds the outcome of an import
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer feeds rows of an import file through Capture
type Importer struct {
	words  Capturer
	cfg    Config
	logger *zap.Logger
}

// New creates an importer
func New(words Capturer, cfg Config, logger *zap.Logger) *Importer {
	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}
	return &Importer{words: words, cfg: cfg, logger: logger}
}

// ImportFile imports a .csv file, or any other file as xlsx
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return im.ImportCSV(ctx, f)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return im.ImportExcel(ctx, f)
}

// ImportExcel imports the configured sheet of an open workbook
func (im *Importer) ImportExcel(ctx context.Context, f *excelize.File) (*Result, error) {
	sheet := im.cfg.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return im.importRows(ctx, rows)
}

// ImportCSV imports comma-separated rows from r
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return im.importRows(ctx, rows)
}

// entry collects every row of one word so its meanings are stored together
type entry struct {
	word      string
	sourceURL string
	meanings  []domain.Meaning
	firstRow  int
}

func (im *Importer) importRows(ctx context.Context, rows [][]string) (*Result, error) {
	result := &Result{Errors: make([]string, 0)}

	var order []*entry
	byWord := make(map[string]*entry)

	for i, row := range rows {
		rowNum := i + 1
		// Skip header rows
		if rowNum < im.cfg.StartRow {
			continue
		}
		result.TotalProcessed++

		key := domain.NormalizeWord(cell(row, colWord))
		if key == "" {
			result.Skipped++
			continue
		}

		e, exists := byWord[key]
		if !exists {
			e = &entry{word: key, sourceURL: cell(row, colSourceURL), firstRow: rowNum}
			byWord[key] = e
			order = append(order, e)
		} else {
			// Duplicate rows only contribute meanings
			result.Skipped++
		}

		if m, ok := meaningFromRow(row); ok {
			e.meanings = append(e.meanings, m)
		}
	}

	for _, e := range order {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		_, created, err := im.words.Capture(ctx, e.word, e.sourceURL, e.meanings)
		if err != nil {
			im.logger.Error("Failed to import word", zap.String("word", e.word), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", e.firstRow, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	im.logger.Info("Import finished",
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func meaningFromRow(row []string) (domain.Meaning, bool) {
	m := domain.Meaning{
		PartOfSpeech: cell(row, colPartOfSpeech),
		Definition:   cell(row, colDefinition),
		Example:      cell(row, colExample),
	}
	return m, m.Definition != ""
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
