package rank

import (
	"fmt"
)

// UnresolvedTeamNameError is returned when a team name in a game or injury row
// does not match any roster entry.
type UnresolvedTeamNameError string

func (e UnresolvedTeamNameError) Error() string {
	return fmt.Sprintf("team name %q does not match any roster entry", string(e))
}

// DataShapeError is returned when the input to the inference engine is
// malformed: mismatched row counts, team indices out of range, or an invalid
// roster. It is fatal and never retried.
type DataShapeError string

func (e DataShapeError) Error() string {
	return string(e)
}

// RosterEntry is one row of the preseason roster as supplied by the caller.
type RosterEntry struct {
	Name string
	Rank int
}

// Roster is the fixed set of teams for a season, in input order. Team indices
// used throughout the package are positions in this roster.
type Roster struct {
	names  []string
	ranks  []int
	index  map[string]int
	priors []float64
}

// NewRoster validates and builds a roster. The preseason ranks must form a
// permutation of 1..n, names must be unique and non-empty, and at least two
// teams are required.
func NewRoster(entries []RosterEntry) (*Roster, error) {
	n := len(entries)
	if n < 2 {
		return nil, DataShapeError(fmt.Sprintf("roster requires at least 2 teams, got %d", n))
	}
	r := &Roster{
		names: make([]string, n),
		ranks: make([]int, n),
		index: make(map[string]int, n),
	}
	seenRanks := make(map[int]string, n)
	for i, e := range entries {
		if e.Name == "" {
			return nil, DataShapeError(fmt.Sprintf("roster row %d has an empty team name", i))
		}
		if _, ok := r.index[e.Name]; ok {
			return nil, DataShapeError(fmt.Sprintf("team name %q appears more than once in the roster", e.Name))
		}
		if e.Rank < 1 || e.Rank > n {
			return nil, DataShapeError(fmt.Sprintf("preseason rank %d for team %q is outside 1..%d", e.Rank, e.Name, n))
		}
		if other, ok := seenRanks[e.Rank]; ok {
			return nil, DataShapeError(fmt.Sprintf("preseason rank %d assigned to both %q and %q", e.Rank, other, e.Name))
		}
		r.names[i] = e.Name
		r.ranks[i] = e.Rank
		r.index[e.Name] = i
		seenRanks[e.Rank] = e.Name
	}
	r.priors = PriorScores(r.ranks)
	return r, nil
}

// Len returns the number of teams.
func (r *Roster) Len() int {
	return len(r.names)
}

// Index resolves a team name to its roster index.
func (r *Roster) Index(name string) (int, error) {
	i, ok := r.index[name]
	if !ok {
		return 0, UnresolvedTeamNameError(name)
	}
	return i, nil
}

// Name returns the team name at roster index i.
func (r *Roster) Name(i int) string {
	return r.names[i]
}

// Rank returns the preseason rank of the team at roster index i.
func (r *Roster) Rank(i int) int {
	return r.ranks[i]
}

// PriorScores returns a copy of the derived prior quality scores, one per
// team in roster order.
func (r *Roster) PriorScores() []float64 {
	out := make([]float64, len(r.priors))
	copy(out, r.priors)
	return out
}

// GameRow is one completed game as supplied by the caller. Injury counts are
// the number of players listed as injured for each side; rows from sources
// without injury reports leave them zero.
type GameRow struct {
	Week             int
	HomeTeam         string
	HomeScore        int
	VisitingTeam     string
	VisitingScore    int
	HomeInjuries     int
	VisitingInjuries int
}

// UpcomingRow is one not-yet-played game as supplied by the caller.
type UpcomingRow struct {
	Week             int
	HomeTeam         string
	VisitingTeam     string
	HomeInjuries     int
	VisitingInjuries int
}

// Dataset is the fully materialized input to the inference engine: resolved
// team indices, transformed differentials, and injury differentials for every
// completed game. It is immutable once built.
type Dataset struct {
	NTeams int

	// Prior holds one prior quality score per team in roster index order.
	Prior []float64

	// Team1 and Team2 are home and visiting roster indices per game. The
	// orientation is fixed: home advantage and injury effects are only
	// meaningful relative to it.
	Team1 []int
	Team2 []int

	// Diff holds the transformed score differentials (home minus visiting).
	Diff []float64

	// InjDiff holds home-minus-visiting injured player counts per game.
	InjDiff []float64

	roster *Roster
}

// BuildDataset resolves completed game rows against a roster and transforms
// the observed score differentials.
func BuildDataset(roster *Roster, games []GameRow) (*Dataset, error) {
	d := &Dataset{
		NTeams:  roster.Len(),
		Prior:   roster.PriorScores(),
		Team1:   make([]int, len(games)),
		Team2:   make([]int, len(games)),
		Diff:    make([]float64, len(games)),
		InjDiff: make([]float64, len(games)),
		roster:  roster,
	}
	for g, game := range games {
		home, err := roster.Index(game.HomeTeam)
		if err != nil {
			return nil, err
		}
		visiting, err := roster.Index(game.VisitingTeam)
		if err != nil {
			return nil, err
		}
		d.Team1[g] = home
		d.Team2[g] = visiting
		d.Diff[g] = Transform(float64(game.HomeScore - game.VisitingScore))
		d.InjDiff[g] = float64(game.HomeInjuries - game.VisitingInjuries)
	}
	return d, nil
}

// Roster returns the roster the dataset was built from, or nil for a dataset
// assembled by hand.
func (d *Dataset) Roster() *Roster {
	return d.roster
}

// NGames returns the number of completed games in the dataset.
func (d *Dataset) NGames() int {
	return len(d.Diff)
}

// Validate checks the engine's shape invariants: consistent row counts and
// team indices within the roster.
func (d *Dataset) Validate() error {
	if d.NTeams < 2 {
		return DataShapeError(fmt.Sprintf("dataset requires at least 2 teams, got %d", d.NTeams))
	}
	if len(d.Prior) != d.NTeams {
		return DataShapeError(fmt.Sprintf("prior score count %d does not match team count %d", len(d.Prior), d.NTeams))
	}
	n := len(d.Diff)
	if len(d.Team1) != n || len(d.Team2) != n || len(d.InjDiff) != n {
		return DataShapeError(fmt.Sprintf("game column lengths disagree: team1=%d team2=%d diff=%d injdiff=%d",
			len(d.Team1), len(d.Team2), n, len(d.InjDiff)))
	}
	for g := 0; g < n; g++ {
		if d.Team1[g] < 0 || d.Team1[g] >= d.NTeams {
			return DataShapeError(fmt.Sprintf("game %d home team index %d is outside 0..%d", g, d.Team1[g], d.NTeams-1))
		}
		if d.Team2[g] < 0 || d.Team2[g] >= d.NTeams {
			return DataShapeError(fmt.Sprintf("game %d visiting team index %d is outside 0..%d", g, d.Team2[g], d.NTeams-1))
		}
	}
	return nil
}

// Matchup is an upcoming game with resolved roster indices, used only for
// prediction.
type Matchup struct {
	Week       int
	Home       int
	Visiting   int
	InjuryDiff float64
}

// ResolveUpcoming resolves upcoming game rows against a roster. Missing
// injury counts have already defaulted to zero in the rows.
func ResolveUpcoming(roster *Roster, rows []UpcomingRow) ([]Matchup, error) {
	matchups := make([]Matchup, len(rows))
	for i, row := range rows {
		home, err := roster.Index(row.HomeTeam)
		if err != nil {
			return nil, err
		}
		visiting, err := roster.Index(row.VisitingTeam)
		if err != nil {
			return nil, err
		}
		matchups[i] = Matchup{
			Week:       row.Week,
			Home:       home,
			Visiting:   visiting,
			InjuryDiff: float64(row.HomeInjuries - row.VisitingInjuries),
		}
	}
	return matchups, nil
}
