package rank

import (
	"math"
	"testing"
)

func TestQuickSpreadModelEvenMatchup(t *testing.T) {
	fit := manualFit(t, BaseModel,
		[]string{"a[1]", "a[2]", "sigma_y"},
		map[string][]float64{
			"a[1]":    constant(10, 0.7),
			"a[2]":    constant(10, 0.7),
			"sigma_y": constant(10, 1),
		})
	model, err := NewQuickSpreadModel(fit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, spread := model.Predict(Matchup{Home: 0, Visiting: 1})
	if math.Abs(p-0.5) > 1e-9 {
		t.Errorf("expected 0.5, got %v", p)
	}
	if spread != 0 {
		t.Errorf("expected 0, got %v", spread)
	}
}

func TestQuickSpreadModelStructuralTerms(t *testing.T) {
	fit := manualFit(t, InjuryModel,
		[]string{"a[1]", "a[2]", "sigma_y", "home_adv", "inj_adv"},
		map[string][]float64{
			"a[1]":     constant(10, 1),
			"a[2]":     constant(10, 0),
			"sigma_y":  constant(10, 1),
			"home_adv": constant(10, 0.5),
			"inj_adv":  constant(10, 0.25),
		})
	model, err := NewQuickSpreadModel(fit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, spread := model.Predict(Matchup{Home: 0, Visiting: 1})
	if p <= 0.5 {
		t.Errorf("expected the favorite at home to be above 0.5, got %v", p)
	}
	// mu = 1 - 0 + 0.5 = 1.5 on the transformed scale
	if math.Abs(spread-2.25) > 1e-9 {
		t.Errorf("expected spread 2.25, got %v", spread)
	}

	// Enough of an injury differential flips the pick.
	pInjured, _ := model.Predict(Matchup{Home: 0, Visiting: 1, InjuryDiff: -8})
	if pInjured >= 0.5 {
		t.Errorf("expected the injured favorite to fall below 0.5, got %v", pInjured)
	}
}
