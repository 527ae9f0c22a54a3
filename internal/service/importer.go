package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/msomdec/rewise/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the outcome of reading a deck file.
type ImportResult struct {
	Cards   []domain.Flashcard
	Skipped int // Rows without both a question and an answer
}

var importPolicy = bluemonday.StrictPolicy()

// ImportDeck reads a deck from an .xlsx or .csv file. The first column is
// the question and the second the answer; a leading "question" header row
// is skipped. Markup in cells is stripped.
func ImportDeck(path string) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		return nil, fmt.Errorf("%w: unsupported deck format %q", domain.ErrInvalidInput, ext)
	}
	if err != nil {
		return nil, err
	}

	result := parseDeckRows(rows)
	if len(result.Cards) == 0 {
		return nil, fmt.Errorf("%w: %s contains no cards", domain.ErrInvalidInput, filepath.Base(path))
	}
	return result, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv: %v", domain.ErrInvalidInput, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func parseDeckRows(rows [][]string) *ImportResult {
	result := &ImportResult{}
	for i, row := range rows {
		question, answer := cell(row, 0), cell(row, 1)
		if i == 0 && strings.EqualFold(question, "question") {
			continue
		}
		if question == "" && answer == "" {
			continue
		}
		if question == "" || answer == "" {
			result.Skipped++
			continue
		}
		result.Cards = append(result.Cards, domain.Flashcard{Question: question, Answer: answer})
	}
	return result
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	// StrictPolicy escapes entities; cards are stored as plain text.
	return strings.TrimSpace(html.UnescapeString(importPolicy.Sanitize(row[i])))
}
