package rank

import (
	"context"
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

// fitOrWarn runs a fit and fails the test on any error other than a
// convergence warning. Short test chains are allowed to mix imperfectly.
func fitOrWarn(t *testing.T, data *Dataset, spec ModelSpec, cfg Config) *Fit {
	t.Helper()
	fit, err := FitModel(context.Background(), data, spec, cfg)
	var warning *ConvergenceWarning
	if err != nil && !errors.As(err, &warning) {
		t.Fatalf("unexpected fit error: %v", err)
	}
	if fit == nil {
		t.Fatal("expected a fit even with a convergence warning")
	}
	return fit
}

func testConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Iterations = 400
	cfg.Warmup = 400
	cfg.Chains = 2
	cfg.Seed = seed
	return cfg
}

func TestFitModelEndToEnd(t *testing.T) {
	roster := testRoster(t)
	// BUF beats KC by a transformed differential of +3, NYJ beats NE by +1.
	games := []GameRow{
		{Week: 1, HomeTeam: "BUF", HomeScore: 9, VisitingTeam: "KC", VisitingScore: 0},
		{Week: 1, HomeTeam: "NYJ", HomeScore: 1, VisitingTeam: "NE", VisitingScore: 0},
	}
	data, err := BuildDataset(roster, games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := testConfig(12345)
	fit := fitOrWarn(t, data, HomeFieldModel, cfg)

	if got := fit.Samples.Len(); got != cfg.Chains*cfg.Iterations {
		t.Errorf("expected %d pooled draws, got %d", cfg.Chains*cfg.Iterations, got)
	}
	if !fit.Samples.Has("home_adv") {
		t.Error("expected home_adv in the home-field variant")
	}
	if fit.Samples.Has("inj_adv") {
		t.Error("did not expect inj_adv in the home-field variant")
	}
	for _, name := range fit.Samples.Names() {
		if _, ok := fit.Diagnostics.RHat[name]; !ok {
			t.Errorf("expected a diagnostic for parameter %s", name)
		}
	}

	upcoming := []UpcomingRow{{Week: 2, HomeTeam: "BUF", VisitingTeam: "NYJ"}}
	matchups, err := ResolveUpcoming(roster, upcoming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spreads, err := SimulateSpreads(fit, matchups, rand.NewSource(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	predictions, err := SummarizePredictions(fit, matchups, spreads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(predictions) != 1 {
		t.Fatalf("expected exactly one prediction row, got %d", len(predictions))
	}
	p := predictions[0]
	if p.WinProbability < 0 || p.WinProbability > 1 {
		t.Errorf("expected win probability in [0,1], got %v", p.WinProbability)
	}
	if math.IsNaN(p.Spread) || math.IsInf(p.Spread, 0) {
		t.Errorf("expected a finite predicted spread, got %v", p.Spread)
	}
	if p.SE < 0 {
		t.Errorf("expected nonnegative predictive SE, got %v", p.SE)
	}
	if p.HomeTeam != "BUF" || p.VisitingTeam != "NYJ" {
		t.Errorf("expected BUF vs NYJ, got %s vs %s", p.HomeTeam, p.VisitingTeam)
	}

	// Posterior qualities should recover the on-field ordering: BUF clearly
	// ahead of KC.
	summaries, err := fit.TeamSummaries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summaries[0].PosteriorMean <= summaries[1].PosteriorMean {
		t.Errorf("expected BUF (%v) above KC (%v)", summaries[0].PosteriorMean, summaries[1].PosteriorMean)
	}
}

func TestFitModelNormalizesVariant(t *testing.T) {
	roster := testRoster(t)
	games := []GameRow{
		{Week: 1, HomeTeam: "BUF", HomeScore: 20, VisitingTeam: "KC", VisitingScore: 10},
	}
	data, err := BuildDataset(roster, games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := testConfig(5)
	cfg.Iterations = 50
	cfg.Warmup = 50

	fit := fitOrWarn(t, data, ModelSpec{UseInjuryAdvantage: true}, cfg)
	if !fit.Spec.UseHomeAdvantage {
		t.Error("expected the injury variant to imply the home-field term")
	}
	if !fit.Samples.Has("home_adv") || !fit.Samples.Has("inj_adv") {
		t.Error("expected both structural terms in the injury variant")
	}
}

func TestFitModelRejectsBadInput(t *testing.T) {
	roster := testRoster(t)
	data, err := BuildDataset(roster, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := &Dataset{NTeams: 4, Prior: []float64{1, 0, 0, -1}, Team1: []int{7}, Team2: []int{0}, Diff: []float64{1}, InjDiff: []float64{0}}
	var shape DataShapeError
	if _, err := FitModel(context.Background(), bad, BaseModel, testConfig(1)); !errors.As(err, &shape) {
		t.Errorf("expected DataShapeError, got %v", err)
	}

	cfg := testConfig(1)
	cfg.Chains = 0
	if _, err := FitModel(context.Background(), data, BaseModel, cfg); err == nil {
		t.Error("expected an error for zero chains")
	}

	cfg = testConfig(1)
	cfg.DF = 0
	if _, err := FitModel(context.Background(), data, BaseModel, cfg); err == nil {
		t.Error("expected an error for nonpositive degrees of freedom")
	}
}

func TestFitModelCancellation(t *testing.T) {
	roster := testRoster(t)
	games := []GameRow{
		{Week: 1, HomeTeam: "BUF", HomeScore: 20, VisitingTeam: "KC", VisitingScore: 10},
	}
	data, err := BuildDataset(roster, games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FitModel(ctx, data, BaseModel, testConfig(1))
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// A full season of injury-free games fit with the injury variant should land
// on essentially the same team qualities as the home-field variant.
func TestInjuryVariantWithZeroInjuriesMatchesHomeField(t *testing.T) {
	roster := testRoster(t)
	games := []GameRow{
		{Week: 1, HomeTeam: "BUF", HomeScore: 27, VisitingTeam: "KC", VisitingScore: 20},
		{Week: 1, HomeTeam: "NYJ", HomeScore: 20, VisitingTeam: "NE", VisitingScore: 16},
		{Week: 2, HomeTeam: "BUF", HomeScore: 30, VisitingTeam: "NYJ", VisitingScore: 13},
		{Week: 2, HomeTeam: "KC", HomeScore: 27, VisitingTeam: "NE", VisitingScore: 13},
		{Week: 3, HomeTeam: "BUF", HomeScore: 24, VisitingTeam: "NE", VisitingScore: 10},
		{Week: 3, HomeTeam: "KC", HomeScore: 23, VisitingTeam: "NYJ", VisitingScore: 17},
		{Week: 4, HomeTeam: "KC", HomeScore: 20, VisitingTeam: "BUF", VisitingScore: 23},
		{Week: 4, HomeTeam: "NE", HomeScore: 14, VisitingTeam: "NYJ", VisitingScore: 17},
		{Week: 5, HomeTeam: "NYJ", HomeScore: 10, VisitingTeam: "BUF", VisitingScore: 27},
		{Week: 5, HomeTeam: "NE", HomeScore: 17, VisitingTeam: "KC", VisitingScore: 24},
		{Week: 6, HomeTeam: "NE", HomeScore: 13, VisitingTeam: "BUF", VisitingScore: 20},
		{Week: 6, HomeTeam: "NYJ", HomeScore: 13, VisitingTeam: "KC", VisitingScore: 24},
	}
	data, err := BuildDataset(roster, games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := testConfig(99)
	cfg.Iterations = 600
	homeFit := fitOrWarn(t, data, HomeFieldModel, cfg)
	injuryFit := fitOrWarn(t, data, InjuryModel, cfg)

	homeSummaries, err := homeFit.TeamSummaries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	injurySummaries, err := injuryFit.TeamSummaries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range homeSummaries {
		d := math.Abs(homeSummaries[i].PosteriorMean - injurySummaries[i].PosteriorMean)
		if d > 0.5 {
			t.Errorf("team %s: posterior means differ by %v between variants", homeSummaries[i].Team, d)
		}
	}
}

func BenchmarkLogPosterior(b *testing.B) {
	rng := rand.New(rand.NewSource(17))
	nteams := 32
	ngames := 128
	data := &Dataset{
		NTeams:  nteams,
		Prior:   make([]float64, nteams),
		Team1:   make([]int, ngames),
		Team2:   make([]int, ngames),
		Diff:    make([]float64, ngames),
		InjDiff: make([]float64, ngames),
	}
	for i := range data.Prior {
		data.Prior[i] = rng.NormFloat64()
	}
	for g := 0; g < ngames; g++ {
		data.Team1[g] = rng.Intn(nteams)
		data.Team2[g] = (data.Team1[g] + 1 + rng.Intn(nteams-1)) % nteams
		data.Diff[g] = rng.NormFloat64() * 3
		data.InjDiff[g] = float64(rng.Intn(7) - 3)
	}

	post := &posterior{data: data, spec: InjuryModel.normalize(), cfg: DefaultConfig()}
	theta := post.initial(rng)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		post.logProb(theta)
	}
}
