package rank

import (
	"fmt"
	"strings"

	"github.com/atgjack/prob"
	"gonum.org/v1/gonum/stat"
)

// QuickSpreadModel predicts games from posterior mean qualities and a normal
// approximation to the observation noise, without drawing from the posterior
// predictive. It trades the Student-t tails and parameter uncertainty for a
// closed-form answer, which is plenty for a fast look at a slate of games;
// SimulateSpreads remains the faithful path.
type QuickSpreadModel struct {
	dist    prob.Normal
	quality []float64
	homeAdv float64
	injAdv  float64
	roster  *Roster
}

// NewQuickSpreadModel reduces a fit to its posterior means.
func NewQuickSpreadModel(fit *Fit) (*QuickSpreadModel, error) {
	m := &QuickSpreadModel{
		quality: make([]float64, fit.Data.NTeams),
		roster:  fit.Data.Roster(),
	}
	for i := range m.quality {
		col, err := fit.Samples.Col(QualityName(i))
		if err != nil {
			return nil, err
		}
		m.quality[i] = stat.Mean(col, nil)
	}
	sigmaY, err := fit.Samples.Col("sigma_y")
	if err != nil {
		return nil, err
	}
	m.dist = prob.Normal{Mu: 0, Sigma: stat.Mean(sigmaY, nil)}
	if fit.Spec.UseHomeAdvantage {
		col, err := fit.Samples.Col("home_adv")
		if err != nil {
			return nil, err
		}
		m.homeAdv = stat.Mean(col, nil)
	}
	if fit.Spec.UseInjuryAdvantage {
		col, err := fit.Samples.Col("inj_adv")
		if err != nil {
			return nil, err
		}
		m.injAdv = stat.Mean(col, nil)
	}
	return m, nil
}

// Predict returns the home team's win probability and predicted point spread.
func (m *QuickSpreadModel) Predict(game Matchup) (float64, float64) {
	mu := m.quality[game.Home] - m.quality[game.Visiting] + m.homeAdv + m.injAdv*game.InjuryDiff
	p := m.dist.Cdf(mu)
	return p, InverseTransform(mu)
}

func (m *QuickSpreadModel) String() string {
	var b strings.Builder
	for i, q := range m.quality {
		name := QualityName(i)
		if m.roster != nil {
			name = m.roster.Name(i)
		}
		b.WriteString(fmt.Sprintf("%5s: %0.3f\n", name, q))
	}
	b.WriteString(fmt.Sprintf("home adv %0.3f, injury adv %0.3f\n", m.homeAdv, m.injAdv))
	return b.String()
}
