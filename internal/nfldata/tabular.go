// Package nfldata reads the clean tabular season inputs (roster, completed
// games, upcoming games) that the model core consumes. Fetching these tables
// from the web is someone else's job; this package only parses what is
// already on disk.
package nfldata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

// columnIndex finds the first header cell matching any of the given names,
// ignoring case and surrounding space. Returns -1 when absent.
func columnIndex(header []string, names ...string) int {
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, name := range names {
			if normalized == name {
				return i
			}
		}
	}
	return -1
}

func cellAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func intCell(record []string, i int, what string, row int) (int, error) {
	s := cellAt(record, i)
	if s == "" {
		return 0, fmt.Errorf("row %d is missing %s", row, what)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("row %d has a bad %s %q: %w", row, what, s, err)
	}
	return v, nil
}

// optionalIntCell treats a missing column or blank cell as zero.
func optionalIntCell(record []string, i int, what string, row int) (int, error) {
	s := cellAt(record, i)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("row %d has a bad %s %q: %w", row, what, s, err)
	}
	return v, nil
}

func parseRoster(records [][]string) ([]rank.RosterEntry, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("roster table has no data rows")
	}
	header := records[0]
	teamCol := columnIndex(header, "team", "team_name", "name")
	rankCol := columnIndex(header, "rank", "preseason_rank")
	if teamCol < 0 || rankCol < 0 {
		return nil, fmt.Errorf("roster table requires 'team' and 'rank' columns, got %v", header)
	}

	entries := make([]rank.RosterEntry, 0, len(records)-1)
	for row, record := range records[1:] {
		name := cellAt(record, teamCol)
		if name == "" {
			continue
		}
		preseasonRank, err := intCell(record, rankCol, "preseason rank", row+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rank.RosterEntry{Name: name, Rank: preseasonRank})
	}
	return entries, nil
}

// parseGames reads completed game rows. Rows missing either score are not
// completed games and are skipped, so the resulting count is exactly the
// number of games with both scores present.
func parseGames(records [][]string) ([]rank.GameRow, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("games table has no data rows")
	}
	header := records[0]
	weekCol := columnIndex(header, "week")
	homeCol := columnIndex(header, "home_team", "home")
	homeScoreCol := columnIndex(header, "home_score")
	visitingCol := columnIndex(header, "visiting_team", "visiting", "away_team")
	visitingScoreCol := columnIndex(header, "visiting_score", "away_score")
	if weekCol < 0 || homeCol < 0 || homeScoreCol < 0 || visitingCol < 0 || visitingScoreCol < 0 {
		return nil, fmt.Errorf("games table requires week, home_team, home_score, visiting_team, and visiting_score columns, got %v", header)
	}
	homeInjCol := columnIndex(header, "home_injuries")
	visitingInjCol := columnIndex(header, "visiting_injuries")

	games := make([]rank.GameRow, 0, len(records)-1)
	for row, record := range records[1:] {
		home := cellAt(record, homeCol)
		visiting := cellAt(record, visitingCol)
		if home == "" && visiting == "" {
			continue
		}
		if cellAt(record, homeScoreCol) == "" || cellAt(record, visitingScoreCol) == "" {
			continue
		}
		week, err := intCell(record, weekCol, "week", row+1)
		if err != nil {
			return nil, err
		}
		homeScore, err := intCell(record, homeScoreCol, "home score", row+1)
		if err != nil {
			return nil, err
		}
		visitingScore, err := intCell(record, visitingScoreCol, "visiting score", row+1)
		if err != nil {
			return nil, err
		}
		homeInj, err := optionalIntCell(record, homeInjCol, "home injury count", row+1)
		if err != nil {
			return nil, err
		}
		visitingInj, err := optionalIntCell(record, visitingInjCol, "visiting injury count", row+1)
		if err != nil {
			return nil, err
		}
		games = append(games, rank.GameRow{
			Week:             week,
			HomeTeam:         home,
			HomeScore:        homeScore,
			VisitingTeam:     visiting,
			VisitingScore:    visitingScore,
			HomeInjuries:     homeInj,
			VisitingInjuries: visitingInj,
		})
	}
	return games, nil
}

func parseUpcoming(records [][]string) ([]rank.UpcomingRow, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("upcoming games table has no data rows")
	}
	header := records[0]
	weekCol := columnIndex(header, "week")
	homeCol := columnIndex(header, "home_team", "home")
	visitingCol := columnIndex(header, "visiting_team", "visiting", "away_team")
	if weekCol < 0 || homeCol < 0 || visitingCol < 0 {
		return nil, fmt.Errorf("upcoming games table requires week, home_team, and visiting_team columns, got %v", header)
	}
	homeInjCol := columnIndex(header, "home_injuries")
	visitingInjCol := columnIndex(header, "visiting_injuries")

	upcoming := make([]rank.UpcomingRow, 0, len(records)-1)
	for row, record := range records[1:] {
		home := cellAt(record, homeCol)
		visiting := cellAt(record, visitingCol)
		if home == "" && visiting == "" {
			continue
		}
		week, err := intCell(record, weekCol, "week", row+1)
		if err != nil {
			return nil, err
		}
		homeInj, err := optionalIntCell(record, homeInjCol, "home injury count", row+1)
		if err != nil {
			return nil, err
		}
		visitingInj, err := optionalIntCell(record, visitingInjCol, "visiting injury count", row+1)
		if err != nil {
			return nil, err
		}
		upcoming = append(upcoming, rank.UpcomingRow{
			Week:             week,
			HomeTeam:         home,
			VisitingTeam:     visiting,
			HomeInjuries:     homeInj,
			VisitingInjuries: visitingInj,
		})
	}
	return upcoming, nil
}
