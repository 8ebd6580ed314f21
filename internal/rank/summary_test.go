package rank

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestTeamSummaries(t *testing.T) {
	roster := testRoster(t)
	data, err := BuildDataset(roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	samples, err := NewSamples(
		[]string{"a[1]", "a[2]", "a[3]", "a[4]"},
		map[string][]float64{
			"a[1]": {1, 2, 3},
			"a[2]": {2, 2, 2},
			"a[3]": {0, 0, 0},
			"a[4]": {-1, 0, 1},
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fit := &Fit{Spec: BaseModel, Config: DefaultConfig(), Data: data, Samples: samples}

	summaries, err := fit.TeamSummaries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 4 {
		t.Fatalf("expected 4 summaries, got %d", len(summaries))
	}
	if summaries[0].Team != "BUF" || summaries[0].PreseasonRank != 1 {
		t.Errorf("expected BUF rank 1, got %s rank %d", summaries[0].Team, summaries[0].PreseasonRank)
	}
	if summaries[0].PosteriorMean != 2 {
		t.Errorf("expected mean 2, got %v", summaries[0].PosteriorMean)
	}
	// unbiased sample standard deviation of {1,2,3}
	if math.Abs(summaries[0].PosteriorSE-1) > 1e-12 {
		t.Errorf("expected SE 1, got %v", summaries[0].PosteriorSE)
	}
	if summaries[1].PosteriorSE != 0 {
		t.Errorf("expected SE 0 for constant draws, got %v", summaries[1].PosteriorSE)
	}
}

func TestSummarizePredictionsTieCountsAsLoss(t *testing.T) {
	fit := manualFit(t, BaseModel,
		[]string{"a[1]", "a[2]", "sigma_y"},
		map[string][]float64{
			"a[1]":    constant(4, 0),
			"a[2]":    constant(4, 0),
			"sigma_y": constant(4, 1),
		})
	games := []Matchup{{Week: 9, Home: 0, Visiting: 1}}
	spreads := mat.NewDense(4, 1, []float64{1, -1, 0, 2})

	predictions, err := SummarizePredictions(fit, games, spreads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := predictions[0]
	if p.WinProbability != 0.5 {
		t.Errorf("expected 0.5 with the tie counting against the home team, got %v", p.WinProbability)
	}
	if p.Spread != 0.5 {
		t.Errorf("expected mean spread 0.5, got %v", p.Spread)
	}
	if p.Week != 9 {
		t.Errorf("expected week 9, got %d", p.Week)
	}
	if len(p.Quantiles) != len(PredictionQuantiles) {
		t.Fatalf("expected %d quantiles, got %d", len(PredictionQuantiles), len(p.Quantiles))
	}
	for i := 1; i < len(p.Quantiles); i++ {
		if p.Quantiles[i] < p.Quantiles[i-1] {
			t.Errorf("expected nondecreasing quantiles, got %v", p.Quantiles)
		}
	}
}

// Swapping home and visiting flips every simulated spread's sign, and with no
// ties the win probability must flip to its complement.
func TestSummarizePredictionsSymmetry(t *testing.T) {
	fit := manualFit(t, BaseModel,
		[]string{"a[1]", "a[2]", "sigma_y"},
		map[string][]float64{
			"a[1]":    constant(5, 0),
			"a[2]":    constant(5, 0),
			"sigma_y": constant(5, 1),
		})
	games := []Matchup{{Home: 0, Visiting: 1}}
	values := []float64{3, -1, 2, -4, 5}
	spreads := mat.NewDense(5, 1, values)

	forward, err := SummarizePredictions(fit, games, spreads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	negated := make([]float64, len(values))
	for i, v := range values {
		negated[i] = -v
	}
	swapped := []Matchup{{Home: 1, Visiting: 0}}
	backward, err := SummarizePredictions(fit, swapped, mat.NewDense(5, 1, negated))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := forward[0].WinProbability + backward[0].WinProbability; math.Abs(got-1) > 1e-12 {
		t.Errorf("expected complementary win probabilities, got sum %v", got)
	}
	if got := forward[0].Spread + backward[0].Spread; math.Abs(got) > 1e-12 {
		t.Errorf("expected opposite spreads, got sum %v", got)
	}
	if math.Abs(forward[0].SE-backward[0].SE) > 1e-12 {
		t.Errorf("expected equal SEs, got %v and %v", forward[0].SE, backward[0].SE)
	}
}

func TestSummarizePredictionsShapeChecks(t *testing.T) {
	fit := manualFit(t, BaseModel,
		[]string{"a[1]", "a[2]", "sigma_y"},
		map[string][]float64{
			"a[1]":    constant(4, 0),
			"a[2]":    constant(4, 0),
			"sigma_y": constant(4, 1),
		})
	games := []Matchup{{Home: 0, Visiting: 1}}

	if _, err := SummarizePredictions(fit, games, mat.NewDense(4, 2, nil)); err == nil {
		t.Error("expected an error for a column count mismatch")
	}
	if _, err := SummarizePredictions(fit, games, mat.NewDense(1, 1, nil)); err == nil {
		t.Error("expected an error for a single draw")
	}
}
