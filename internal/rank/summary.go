package rank

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PredictionQuantiles are the probabilities at which per-game spread
// quantiles are reported.
var PredictionQuantiles = []float64{0.1, 0.25, 0.5, 0.75, 0.9}

// TeamSummary is one row of the per-team quality table.
type TeamSummary struct {
	Team          string
	PreseasonRank int
	PosteriorMean float64
	PosteriorSE   float64
}

// TeamSummaries computes the posterior mean and standard error of each team's
// latent quality. The standard error is the unbiased sample standard
// deviation of the draws.
func (f *Fit) TeamSummaries() ([]TeamSummary, error) {
	roster := f.Data.Roster()
	out := make([]TeamSummary, f.Data.NTeams)
	for i := 0; i < f.Data.NTeams; i++ {
		col, err := f.Samples.Col(QualityName(i))
		if err != nil {
			return nil, err
		}
		mean, se := stat.MeanStdDev(col, nil)
		out[i] = TeamSummary{PosteriorMean: mean, PosteriorSE: se}
		if roster != nil {
			out[i].Team = roster.Name(i)
			out[i].PreseasonRank = roster.Rank(i)
		} else {
			out[i].Team = QualityName(i)
		}
	}
	return out, nil
}

// GamePrediction is one row of the per-game prediction table.
type GamePrediction struct {
	Week         int
	HomeTeam     string
	VisitingTeam string

	// WinProbability is the fraction of simulated spreads favoring the home
	// team. A simulated tie counts against the home team, matching the sign
	// convention of the transform.
	WinProbability float64

	// Spread is the mean simulated point spread (home minus visiting).
	Spread float64

	// SE is the unbiased sample standard deviation of the simulated spreads.
	SE float64

	// Quantiles holds the empirical spread quantiles at PredictionQuantiles.
	Quantiles []float64
}

// SummarizePredictions reduces a simulated spread matrix to one prediction
// row per upcoming game.
func SummarizePredictions(fit *Fit, games []Matchup, spreads *mat.Dense) ([]GamePrediction, error) {
	ndraws, ngames := spreads.Dims()
	if ngames != len(games) {
		return nil, DataShapeError(fmt.Sprintf("spread matrix has %d columns for %d games", ngames, len(games)))
	}
	if ndraws < 2 {
		return nil, DataShapeError(fmt.Sprintf("spread matrix has %d draws, need at least 2", ndraws))
	}
	roster := fit.Data.Roster()

	out := make([]GamePrediction, ngames)
	col := make([]float64, ndraws)
	for g, game := range games {
		mat.Col(col, g, spreads)

		wins := 0
		for _, s := range col {
			if s > 0 {
				wins++
			}
		}
		mean, se := stat.MeanStdDev(col, nil)

		sort.Float64s(col)
		quantiles := make([]float64, len(PredictionQuantiles))
		for i, p := range PredictionQuantiles {
			quantiles[i] = stat.Quantile(p, stat.LinInterp, col, nil)
		}

		out[g] = GamePrediction{
			Week:           game.Week,
			WinProbability: float64(wins) / float64(ndraws),
			Spread:         mean,
			SE:             se,
			Quantiles:      quantiles,
		}
		if roster != nil {
			out[g].HomeTeam = roster.Name(game.Home)
			out[g].VisitingTeam = roster.Name(game.Visiting)
		}
	}
	return out, nil
}
