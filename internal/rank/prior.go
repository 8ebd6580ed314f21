package rank

import (
	"gonum.org/v1/gonum/stat"
)

// PriorScores converts preseason ordinal ranks (1 = best) into centered prior
// quality scores. The ranks are reversed so a better rank yields a larger
// score, then centered and scaled by twice the sample standard deviation.
// That puts the prior on roughly the scale of a standard normal latent
// variable, so its influence on the fit is governed by the inferred weight b
// and spread sigma_a rather than by the arbitrary size of the league.
//
// The result is a pure function of the rank list and must be recomputed
// whenever the roster changes.
func PriorScores(ranks []int) []float64 {
	n := len(ranks)
	reversed := make([]float64, n)
	for i, r := range ranks {
		reversed[i] = float64(n - r + 1)
	}
	mean, stddev := stat.MeanStdDev(reversed, nil)
	scores := make([]float64, n)
	for i, v := range reversed {
		scores[i] = (v - mean) / (2 * stddev)
	}
	return scores
}
