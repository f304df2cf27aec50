package vocab

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/example/vocabengine/pkg/models"
)

// ImportConfig defines how columns of an Excel or CSV file map onto words
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	TermColumn          string // Column with the target-language word
	TranslationColumn   string // Column with the translation
	CategoryColumn      string // Column with the category name
	PronunciationColumn string // Column with the pronunciation (optional)
	ExampleColumn       string // Column with an example sentence (optional)
	IDColumn            string // Column with a stable word ID (optional)
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based)
}

// DefaultImportConfig returns the default column mapping
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TermColumn:          "A",
		TranslationColumn:   "B",
		CategoryColumn:      "C",
		PronunciationColumn: "D",
		ExampleColumn:       "E",
		IDColumn:            "F",
		SheetName:           "Sheet1",
		StartRow:            2, // Skip the header row
	}
}

// ImportResult holds the counters of one import run
type ImportResult struct {
	TotalProcessed    int
	CategoriesCreated int
	WordsImported     int
	Skipped           int
	Errors            []string
}

// ImportWords reads a vocabulary table from an Excel or CSV file and builds
// the category list the engine schedules against. Rows missing a term or
// translation are skipped and reported, not fatal.
func ImportWords(config ImportConfig) ([]models.Category, *ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

func importFromExcel(config ImportConfig) ([]models.Category, *ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open excel file")
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read sheet %q", config.SheetName)
	}

	cols := map[string]int{}
	for name, letter := range map[string]string{
		"term":          config.TermColumn,
		"translation":   config.TranslationColumn,
		"category":      config.CategoryColumn,
		"pronunciation": config.PronunciationColumn,
		"example":       config.ExampleColumn,
		"id":            config.IDColumn,
	} {
		cols[name] = columnIndex(letter)
	}

	builder := newTableBuilder()
	result := &ImportResult{Errors: []string{}}

	start := config.StartRow
	if start < 1 {
		start = 1
	}
	for i, row := range rows {
		if i+1 < start {
			continue
		}
		result.TotalProcessed++
		builder.addRow(result, i+1, cell(row, cols["term"]), cell(row, cols["translation"]),
			cell(row, cols["category"]), cell(row, cols["pronunciation"]),
			cell(row, cols["example"]), cell(row, cols["id"]))
	}

	return builder.categories(), result, nil
}

func importFromCSV(config ImportConfig) ([]models.Category, *ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open csv file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	builder := newTableBuilder()
	result := &ImportResult{Errors: []string{}}

	start := config.StartRow
	if start < 1 {
		start = 1
	}
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line+1, err))
			continue
		}
		line++
		if line < start {
			continue
		}
		result.TotalProcessed++
		builder.addRow(result, line,
			cell(row, columnIndex(config.TermColumn)),
			cell(row, columnIndex(config.TranslationColumn)),
			cell(row, columnIndex(config.CategoryColumn)),
			cell(row, columnIndex(config.PronunciationColumn)),
			cell(row, columnIndex(config.ExampleColumn)),
			cell(row, columnIndex(config.IDColumn)))
	}

	return builder.categories(), result, nil
}

// tableBuilder accumulates rows into categories, keeping first-seen order
type tableBuilder struct {
	order []string
	byKey map[string]*models.Category
}

func newTableBuilder() *tableBuilder {
	return &tableBuilder{byKey: map[string]*models.Category{}}
}

func (b *tableBuilder) addRow(result *ImportResult, rowNum int, term, translation, category, pronunciation, example, id string) {
	term = strings.TrimSpace(term)
	translation = strings.TrimSpace(translation)
	if term == "" || translation == "" {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing term or translation", rowNum))
		return
	}

	name := strings.TrimSpace(category)
	if name == "" {
		name = "General"
	}
	key := strings.ToLower(name)
	cat, ok := b.byKey[key]
	if !ok {
		cat = &models.Category{ID: slugify(name), Name: name}
		b.byKey[key] = cat
		b.order = append(b.order, key)
		result.CategoriesCreated++
	}

	wordID := strings.TrimSpace(id)
	if wordID == "" {
		wordID = uuid.NewString()
	}
	cat.Words = append(cat.Words, models.Word{
		ID:            wordID,
		Term:          term,
		Translation:   translation,
		Pronunciation: strings.TrimSpace(pronunciation),
		Example:       strings.TrimSpace(example),
	})
	result.WordsImported++
}

func (b *tableBuilder) categories() []models.Category {
	out := make([]models.Category, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, *b.byKey[key])
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// columnIndex converts a spreadsheet column letter (A, B, ..., AA) to a
// zero-based index. An empty letter yields -1.
func columnIndex(letter string) int {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return -1
	}
	idx := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return -1
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
