package nfldata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

// sheetRecords flattens the first sheet of an XLSX workbook into the same
// row-of-cells shape the CSV readers produce.
func sheetRecords(slurp []byte) ([][]string, error) {
	xl, err := xlsx.OpenBinary(slurp)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	if len(xl.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := xl.Sheets[0]
	records := make([][]string, len(sheet.Rows))
	for irow, row := range sheet.Rows {
		record := make([]string, len(row.Cells))
		for icol, cell := range row.Cells {
			record[icol] = cell.Value
		}
		records[irow] = record
	}
	return records, nil
}

func loadRecords(path string) ([][]string, error) {
	slurp, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return sheetRecords(slurp)
	}
	return readRecords(strings.NewReader(string(slurp)))
}

// LoadRoster reads a roster table from a CSV or XLSX file.
func LoadRoster(path string) ([]rank.RosterEntry, error) {
	records, err := loadRecords(path)
	if err != nil {
		return nil, err
	}
	return parseRoster(records)
}

// LoadGames reads completed games from a CSV or XLSX file.
func LoadGames(path string) ([]rank.GameRow, error) {
	records, err := loadRecords(path)
	if err != nil {
		return nil, err
	}
	return parseGames(records)
}

// LoadUpcoming reads upcoming games from a CSV or XLSX file.
func LoadUpcoming(path string) ([]rank.UpcomingRow, error) {
	records, err := loadRecords(path)
	if err != nil {
		return nil, err
	}
	return parseUpcoming(records)
}
