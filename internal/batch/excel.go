package batch

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadExcelWordList reads terms from the first column of the first sheet of
// an .xlsx file. A header row is detected heuristically: if the first cell
// reads like a column title ("term", "word", "wort") it is skipped.
func ReadExcelWordList(filename string) ([]string, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var lines []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if i == 0 && isHeaderCell(cell) {
			continue
		}
		lines = append(lines, cell)
	}

	return parseLines(strings.Join(lines, "\n")), nil
}

func isHeaderCell(cell string) bool {
	switch strings.ToLower(cell) {
	case "term", "word", "wort", "vokabel":
		return true
	}
	return false
}
