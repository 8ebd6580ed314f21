package nfldata

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read CSV: %w", err)
	}
	return records, nil
}

// ReadRoster reads a roster table (team, rank columns) from CSV.
func ReadRoster(r io.Reader) ([]rank.RosterEntry, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	return parseRoster(records)
}

// ReadGames reads completed games from CSV. Rows without both scores are
// skipped.
func ReadGames(r io.Reader) ([]rank.GameRow, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	return parseGames(records)
}

// ReadUpcoming reads upcoming games from CSV. Missing injury columns or
// blank injury cells default to zero.
func ReadUpcoming(r io.Reader) ([]rank.UpcomingRow, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	return parseUpcoming(records)
}
