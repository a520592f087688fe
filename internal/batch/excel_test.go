package batch

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, cells []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, value := range cells {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to build cell reference: %v", err)
		}
		if err := f.SetCellValue(sheet, cellRef, value); err != nil {
			t.Fatalf("Failed to set cell value: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "words.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestReadExcelWordList(t *testing.T) {
	path := writeTestWorkbook(t, []string{"Wort", "Katze", "Hund", "", "katze"})

	terms, err := ReadExcelWordList(path)
	if err != nil {
		t.Fatalf("ReadExcelWordList() error = %v", err)
	}

	want := []string{"Katze", "Hund"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("ReadExcelWordList() = %v, want %v", terms, want)
	}
}

func TestReadExcelWordListNoHeader(t *testing.T) {
	path := writeTestWorkbook(t, []string{"Katze", "Hund"})

	terms, err := ReadExcelWordList(path)
	if err != nil {
		t.Fatalf("ReadExcelWordList() error = %v", err)
	}

	want := []string{"Katze", "Hund"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("ReadExcelWordList() = %v, want %v", terms, want)
	}
}

func TestIsHeaderCell(t *testing.T) {
	for cell, want := range map[string]bool{
		"Wort":    true,
		"term":    true,
		"WORD":    true,
		"Vokabel": true,
		"Katze":   false,
		"":        false,
	} {
		if got := isHeaderCell(cell); got != want {
			t.Errorf("isHeaderCell(%q) = %v, want %v", cell, got, want)
		}
	}
}
