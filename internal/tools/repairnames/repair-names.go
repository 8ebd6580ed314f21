// Package repairnames interactively maps team names that do not resolve
// against the roster onto roster entries. Data sources spell team names
// inconsistently often enough that stopping on the first mismatch gets old.
package repairnames

import (
	"fmt"
	"sort"

	"github.com/AlecAivazis/survey/v2"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

// surveyName asks which roster team an unresolved name refers to.
func surveyName(roster *rank.Roster, name string) (string, error) {
	options := make([]string, roster.Len())
	for i := range options {
		options[i] = roster.Name(i)
	}
	sort.Strings(options)

	q := &survey.Select{
		Message: fmt.Sprintf("Which roster team corresponds to the name %q?", name),
		Options: options,
	}
	var answer string
	if err := survey.AskOne(q, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// resolveAll builds a replacement map for every name in the list that does
// not resolve against the roster, asking about each distinct name once.
func resolveAll(roster *rank.Roster, names []string) (map[string]string, error) {
	replacements := make(map[string]string)
	for _, name := range names {
		if _, err := roster.Index(name); err == nil {
			continue
		}
		if _, ok := replacements[name]; ok {
			continue
		}
		replacement, err := surveyName(roster, name)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve team name %q: %w", name, err)
		}
		replacements[name] = replacement
	}
	return replacements, nil
}

// GameRows returns the game rows with every unresolved team name replaced by
// a roster name chosen interactively.
func GameRows(roster *rank.Roster, games []rank.GameRow) ([]rank.GameRow, error) {
	names := make([]string, 0, 2*len(games))
	for _, g := range games {
		names = append(names, g.HomeTeam, g.VisitingTeam)
	}
	replacements, err := resolveAll(roster, names)
	if err != nil {
		return nil, err
	}
	out := make([]rank.GameRow, len(games))
	for i, g := range games {
		if repl, ok := replacements[g.HomeTeam]; ok {
			g.HomeTeam = repl
		}
		if repl, ok := replacements[g.VisitingTeam]; ok {
			g.VisitingTeam = repl
		}
		out[i] = g
	}
	return out, nil
}

// UpcomingRows returns the upcoming game rows with every unresolved team
// name replaced by a roster name chosen interactively.
func UpcomingRows(roster *rank.Roster, rows []rank.UpcomingRow) ([]rank.UpcomingRow, error) {
	names := make([]string, 0, 2*len(rows))
	for _, r := range rows {
		names = append(names, r.HomeTeam, r.VisitingTeam)
	}
	replacements, err := resolveAll(roster, names)
	if err != nil {
		return nil, err
	}
	out := make([]rank.UpcomingRow, len(rows))
	for i, r := range rows {
		if repl, ok := replacements[r.HomeTeam]; ok {
			r.HomeTeam = repl
		}
		if repl, ok := replacements[r.VisitingTeam]; ok {
			r.VisitingTeam = repl
		}
		out[i] = r
	}
	return out, nil
}
