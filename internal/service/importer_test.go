package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/rewise/internal/domain"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImportDeck_CSV(t *testing.T) {
	path := writeFile(t, "deck.csv", "Question,Answer\n"+
		"What is Go?,An open source language\n"+
		"\"Quoted, with comma\",  <b>bold</b> answer\n"+
		",\n"+
		"Only a question,\n")

	result, err := ImportDeck(path)
	if err != nil {
		t.Fatalf("ImportDeck: %v", err)
	}
	if len(result.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d: %+v", len(result.Cards), result.Cards)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Cards[1].Question != "Quoted, with comma" {
		t.Errorf("unexpected question: %q", result.Cards[1].Question)
	}
	if result.Cards[1].Answer != "bold answer" {
		t.Errorf("markup should be stripped, got %q", result.Cards[1].Answer)
	}
}

func TestImportDeck_CSVKeepsEntities(t *testing.T) {
	path := writeFile(t, "deck.csv", "Is 1 < 2 & 3 > 2?,Yes\n")

	result, err := ImportDeck(path)
	if err != nil {
		t.Fatalf("ImportDeck: %v", err)
	}
	if got := result.Cards[0].Question; got != "Is 1 < 2 & 3 > 2?" {
		t.Errorf("question = %q", got)
	}
}

func TestImportDeck_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Question", "Answer"},
		{"What is a slice?", "A view over an array"},
		{"What is a map?", "A hash table"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "deck.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	result, err := ImportDeck(path)
	if err != nil {
		t.Fatalf("ImportDeck: %v", err)
	}
	if len(result.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(result.Cards))
	}
	if result.Cards[0].Question != "What is a slice?" || result.Cards[1].Answer != "A hash table" {
		t.Errorf("unexpected cards: %+v", result.Cards)
	}
}

func TestImportDeck_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"unsupported extension", writeFile(t, "deck.txt", "q,a\n")},
		{"header only", writeFile(t, "deck.csv", "question,answer\n")},
		{"no complete rows", writeFile(t, "deck.csv", "q only,\n,a only\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImportDeck(tt.path); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestImportDeck_MissingFile(t *testing.T) {
	_, err := ImportDeck(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
