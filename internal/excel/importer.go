// Package excel imports catalog content from the curriculum workbooks:
// the TOPIK vocabulary list and the alphabet sheet.
package excel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/example/korbot/internal/database"
	"github.com/example/korbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// WordImportConfig defines the vocabulary import layout
type WordImportConfig struct {
	FilePath          string // Path to the Excel file
	SheetName         string // Name of the sheet to import
	WordColumn        int    // 0-based column with the word
	TranslationColumn int    // Column with the translation
	LevelColumn       int    // Column with the level ("1급".."6급" or a bare digit)
	ImageColumn       int    // Column with an optional image URL
	RomanizationCol   int    // Column with an optional romanization
	ExamplesColumn    int    // Column with optional newline-separated examples
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultWordImportConfig returns the layout of the reference vocabulary workbook
func DefaultWordImportConfig(path string) WordImportConfig {
	return WordImportConfig{
		FilePath:          path,
		SheetName:         "Sheet1",
		WordColumn:        0,
		TranslationColumn: 1,
		LevelColumn:       2,
		ImageColumn:       3,
		RomanizationCol:   4,
		ExamplesColumn:    5,
		StartRow:          2, // skip header
	}
}

// LetterImportConfig defines the alphabet import layout. Columns follow the
// reference sheet: glyph, example, transliteration, translation, sound,
// notes, image.
type LetterImportConfig struct {
	FilePath  string
	SheetName string
	StartRow  int
}

// DefaultLetterImportConfig returns the layout of the reference alphabet sheet
func DefaultLetterImportConfig(path string) LetterImportConfig {
	return LetterImportConfig{
		FilePath:  path,
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

var levelPattern = regexp.MustCompile(`^(\d+)`)

// ParseLevel extracts the numeric level from a raw cell like "1급" or "3"
func ParseLevel(raw string) (int, error) {
	match := levelPattern.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0, fmt.Errorf("no level in %q", raw)
	}
	level, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("invalid level %q: %v", raw, err)
	}
	if level < 1 || level > 6 {
		return 0, fmt.Errorf("level %d out of range 1-6", level)
	}
	return level, nil
}

// cell returns the trimmed cell at the index, or "" past the row's end
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ImportWords imports the vocabulary workbook into the database
func ImportWords(config WordImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	repo := database.NewWordRepository()
	result := &ImportResult{}
	rank := 0

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word := cell(row, config.WordColumn)
		translation := cell(row, config.TranslationColumn)
		if word == "" || translation == "" {
			result.Skipped++
			continue
		}

		level, err := ParseLevel(cell(row, config.LevelColumn))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}

		rank++
		entry := &models.Word{
			Word:         word,
			Translation:  translation,
			Level:        level,
			Rank:         rank,
			Image:        cell(row, config.ImageColumn),
			Romanization: cell(row, config.RomanizationCol),
			Examples:     cell(row, config.ExamplesColumn),
		}
		if err := repo.Upsert(entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportLetters imports the alphabet sheet into the database. Row order
// defines the curriculum position.
func ImportLetters(config LetterImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	repo := database.NewLetterRepository()
	result := &ImportResult{}
	position := 0

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		glyph := cell(row, 0)
		exampleWord := cell(row, 1)
		if glyph == "" || exampleWord == "" {
			result.Skipped++
			continue
		}

		entry := &models.Letter{
			Glyph:           glyph,
			ExampleWord:     exampleWord,
			Transliteration: cell(row, 2),
			Translation:     cell(row, 3),
			Sound:           cell(row, 4),
			Notes:           cell(row, 5),
			Image:           cell(row, 6),
			Position:        position,
		}
		if err := repo.Upsert(entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		position++
		result.Imported++
	}

	return result, nil
}
