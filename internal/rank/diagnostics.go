package rank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ConvergenceWarning reports that the sampling chains have not mixed for at
// least one parameter. It is non-fatal: FitModel returns the Fit alongside
// this error, and posterior summaries remain available, but callers should
// treat the fit as degraded.
type ConvergenceWarning struct {
	Param string
	RHat  float64
}

func (e *ConvergenceWarning) Error() string {
	return fmt.Sprintf("chains have not mixed: parameter %s has potential scale reduction %.3f", e.Param, e.RHat)
}

// Diagnostics holds the per-parameter convergence check of one fit.
type Diagnostics struct {
	// RHat is the split potential-scale-reduction statistic per parameter.
	// Values near 1 indicate the chains agree.
	RHat map[string]float64

	// Converged is true when every parameter's RHat is at or below the
	// configured threshold.
	Converged bool
}

func (d Diagnostics) worst() (param string, rhat float64) {
	for name, r := range d.RHat {
		if r > rhat {
			param, rhat = name, r
		}
	}
	return
}

// diagnose computes split R-hat for every parameter across chains. perChain
// is indexed [chain][parameter][draw].
func diagnose(names []string, perChain [][][]float64, threshold float64) Diagnostics {
	diag := Diagnostics{
		RHat:      make(map[string]float64, len(names)),
		Converged: true,
	}
	for j, name := range names {
		chains := make([][]float64, len(perChain))
		for c := range perChain {
			chains[c] = perChain[c][j]
		}
		r := splitRHat(chains)
		diag.RHat[name] = r
		if r > threshold {
			diag.Converged = false
		}
	}
	return diag
}

// splitRHat computes the potential scale reduction factor after splitting
// each chain in half, so a single wandering chain is caught even when the
// chains agree with each other.
func splitRHat(chains [][]float64) float64 {
	halves := make([][]float64, 0, 2*len(chains))
	for _, chain := range chains {
		mid := len(chain) / 2
		if mid < 2 {
			// Too few draws to judge.
			return 1
		}
		halves = append(halves, chain[:mid], chain[mid:mid*2])
	}

	m := float64(len(halves))
	n := float64(len(halves[0]))

	means := make([]float64, len(halves))
	var w float64
	for i, half := range halves {
		mean, variance := stat.MeanVariance(half, nil)
		means[i] = mean
		w += variance
	}
	w /= m
	if w == 0 {
		// Constant chains: nothing to reduce.
		return 1
	}
	b := n * stat.Variance(means, nil)

	varPlus := (n-1)/n*w + b/n
	return math.Sqrt(varPlus / w)
}
