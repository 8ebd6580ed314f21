package rank

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimulateSpreads draws one simulated point spread per posterior draw per
// upcoming game. For each draw, the game's location term is assembled from
// that draw's parameters, a transformed differential is drawn from the
// Student-t observation distribution, and the inverse transform maps it back
// to point-spread units.
//
// The returned matrix has one row per posterior draw and one column per game.
// Only the structural terms present in the fitted variant are used, so a
// home-field-only fit never sees an injury term.
func SimulateSpreads(fit *Fit, games []Matchup, src rand.Source) (*mat.Dense, error) {
	nteams := fit.Data.NTeams
	for g, game := range games {
		if game.Home < 0 || game.Home >= nteams {
			return nil, DataShapeError(fmt.Sprintf("upcoming game %d home team index %d is outside 0..%d", g, game.Home, nteams-1))
		}
		if game.Visiting < 0 || game.Visiting >= nteams {
			return nil, DataShapeError(fmt.Sprintf("upcoming game %d visiting team index %d is outside 0..%d", g, game.Visiting, nteams-1))
		}
	}

	quality := make([][]float64, nteams)
	for i := 0; i < nteams; i++ {
		col, err := fit.Samples.Col(QualityName(i))
		if err != nil {
			return nil, err
		}
		quality[i] = col
	}
	sigmaY, err := fit.Samples.Col("sigma_y")
	if err != nil {
		return nil, err
	}
	var homeAdv, injAdv []float64
	if fit.Spec.UseHomeAdvantage {
		if homeAdv, err = fit.Samples.Col("home_adv"); err != nil {
			return nil, err
		}
	}
	if fit.Spec.UseInjuryAdvantage {
		if injAdv, err = fit.Samples.Col("inj_adv"); err != nil {
			return nil, err
		}
	}

	ndraws := fit.Samples.Len()
	spreads := mat.NewDense(ndraws, len(games), nil)
	dist := distuv.StudentsT{Nu: fit.Config.DF, Src: src}
	for d := 0; d < ndraws; d++ {
		dist.Sigma = sigmaY[d]
		for g, game := range games {
			mu := quality[game.Home][d] - quality[game.Visiting][d]
			if homeAdv != nil {
				mu += homeAdv[d]
			}
			if injAdv != nil {
				mu += injAdv[d] * game.InjuryDiff
			}
			dist.Mu = mu
			spreads.Set(d, g, InverseTransform(dist.Rand()))
		}
	}
	return spreads, nil
}
