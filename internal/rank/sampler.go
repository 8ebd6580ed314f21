package rank

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fit is the result of one model fit: the pooled posterior sample set plus
// everything needed to generate predictions consistently with the fitted
// variant. It is never mutated after FitModel returns.
type Fit struct {
	Spec        ModelSpec
	Config      Config
	Data        *Dataset
	Samples     *Samples
	Diagnostics Diagnostics
}

// FitModel runs the hierarchical model on a dataset and returns the pooled
// posterior sample set. Each team's latent quality is shrunk toward a value
// proportional to its preseason prior score, and transformed differentials
// are observed through a heavy-tailed Student-t likelihood.
//
// Chains run in parallel, one goroutine each, and are pooled only after a
// split potential-scale-reduction check. If any parameter fails the check,
// the Fit is still returned together with a *ConvergenceWarning error so the
// caller can distinguish a degraded fit from a clean one.
func FitModel(ctx context.Context, data *Dataset, spec ModelSpec, cfg Config) (*Fit, error) {
	spec = spec.normalize()
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if cfg.Chains < 1 || cfg.Iterations < 1 || cfg.Warmup < 0 {
		return nil, fmt.Errorf("FitModel: invalid sampler settings: chains=%d iterations=%d warmup=%d", cfg.Chains, cfg.Iterations, cfg.Warmup)
	}
	if cfg.DF <= 0 {
		return nil, fmt.Errorf("FitModel: degrees of freedom must be positive, got %g", cfg.DF)
	}

	seed := cfg.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}

	post := &posterior{data: data, spec: spec, cfg: cfg}
	names := post.paramNames()

	out := make(chan chainResult, cfg.Chains)
	var wg sync.WaitGroup
	for c := 0; c < cfg.Chains; c++ {
		wg.Add(1)
		// Offset each chain's seed by an odd constant so chains never share a
		// random stream.
		chainSeed := uint64(seed) + uint64(c)*0x9e3779b97f4a7c15
		go func(c int, chainSeed uint64) {
			defer wg.Done()
			out <- runChain(ctx, post, cfg, c, chainSeed)
		}(c, chainSeed)
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	perChain := make([][][]float64, cfg.Chains)
	for res := range out {
		if res.err != nil {
			return nil, fmt.Errorf("FitModel: chain %d failed: %w", res.chain, res.err)
		}
		perChain[res.chain] = res.cols
	}

	pooled := make(map[string][]float64, len(names))
	for j, name := range names {
		col := make([]float64, 0, cfg.Chains*cfg.Iterations)
		for c := 0; c < cfg.Chains; c++ {
			col = append(col, perChain[c][j]...)
		}
		pooled[name] = col
	}
	samples, err := NewSamples(names, pooled)
	if err != nil {
		return nil, fmt.Errorf("FitModel: unable to assemble sample set: %w", err)
	}

	diag := diagnose(names, perChain, cfg.RHatThreshold)
	fit := &Fit{
		Spec:        spec,
		Config:      cfg,
		Data:        data,
		Samples:     samples,
		Diagnostics: diag,
	}
	if !diag.Converged {
		worst, rhat := diag.worst()
		return fit, &ConvergenceWarning{Param: worst, RHat: rhat}
	}
	return fit, nil
}

// posterior evaluates the unnormalized log posterior of one model variant
// over the unconstrained parameter vector
//
//	[a[0..n-1], b, log(sigma_a), log(sigma_y), home_adv?, inj_adv?]
//
// The scales are sampled on the log scale; with the flat priors on b,
// sigma_a, and sigma_y inherited from the model definition, that contributes
// only the log-Jacobian terms.
type posterior struct {
	data *Dataset
	spec ModelSpec
	cfg  Config
}

func (p *posterior) dim() int {
	d := p.data.NTeams + 3
	if p.spec.UseHomeAdvantage {
		d++
	}
	if p.spec.UseInjuryAdvantage {
		d++
	}
	return d
}

func (p *posterior) paramNames() []string {
	names := make([]string, 0, p.dim())
	for i := 0; i < p.data.NTeams; i++ {
		names = append(names, QualityName(i))
	}
	names = append(names, "b", "sigma_a", "sigma_y")
	if p.spec.UseHomeAdvantage {
		names = append(names, "home_adv")
	}
	if p.spec.UseInjuryAdvantage {
		names = append(names, "inj_adv")
	}
	return names
}

func (p *posterior) logProb(theta []float64) float64 {
	n := p.data.NTeams
	b := theta[n]
	logSigmaA := theta[n+1]
	logSigmaY := theta[n+2]
	sigmaA := math.Exp(logSigmaA)
	sigmaY := math.Exp(logSigmaY)

	lp := logSigmaA + logSigmaY

	var homeAdv, injAdv float64
	idx := n + 3
	if p.spec.UseHomeAdvantage {
		homeAdv = theta[idx]
		idx++
		if p.spec.UseInjuryAdvantage {
			lp += distuv.Normal{Mu: 0, Sigma: p.cfg.HomeSigma}.LogProb(homeAdv)
		} else {
			lp += distuv.StudentsT{Mu: 0, Sigma: 1, Nu: 3}.LogProb(homeAdv)
		}
	}
	if p.spec.UseInjuryAdvantage {
		injAdv = theta[idx]
		lp += distuv.Normal{Mu: 0, Sigma: p.cfg.InjSigma}.LogProb(injAdv)
	}

	teamPrior := distuv.Normal{Sigma: sigmaA}
	for i := 0; i < n; i++ {
		teamPrior.Mu = b * p.data.Prior[i]
		lp += teamPrior.LogProb(theta[i])
	}

	likelihood := distuv.StudentsT{Sigma: sigmaY, Nu: p.cfg.DF}
	for g := range p.data.Diff {
		mu := theta[p.data.Team1[g]] - theta[p.data.Team2[g]]
		if p.spec.UseHomeAdvantage {
			mu += homeAdv
		}
		if p.spec.UseInjuryAdvantage {
			mu += injAdv * p.data.InjDiff[g]
		}
		likelihood.Mu = mu
		lp += likelihood.LogProb(p.data.Diff[g])
	}

	return lp
}

// initial jitters the chain's starting point around the prior scores so
// chains start overdispersed.
func (p *posterior) initial(rng *rand.Rand) []float64 {
	theta := make([]float64, p.dim())
	n := p.data.NTeams
	for i := 0; i < n; i++ {
		theta[i] = p.data.Prior[i] + 0.2*rng.NormFloat64()
	}
	theta[n] = 1 + 0.2*rng.NormFloat64()
	theta[n+1] = 0.2 * rng.NormFloat64()
	theta[n+2] = 0.2 * rng.NormFloat64()
	for j := n + 3; j < len(theta); j++ {
		theta[j] = 0.1 * rng.NormFloat64()
	}
	return theta
}

// constrain maps an unconstrained parameter vector to the reported scale,
// exponentiating the log-scale parameters.
func (p *posterior) constrain(theta, out []float64) {
	n := p.data.NTeams
	copy(out, theta)
	out[n+1] = math.Exp(theta[n+1])
	out[n+2] = math.Exp(theta[n+2])
}

type chainResult struct {
	chain int
	cols  [][]float64
	err   error
}

const adaptWindow = 50

// runChain runs one adaptive random-walk Metropolis chain: coordinates are
// updated one at a time, and per-coordinate proposal scales are tuned during
// warmup toward the target acceptance rate, then frozen.
func runChain(ctx context.Context, post *posterior, cfg Config, chain int, seed uint64) chainResult {
	rng := rand.New(rand.NewSource(seed))
	dim := post.dim()

	theta := post.initial(rng)
	scales := make([]float64, dim)
	for j := range scales {
		scales[j] = 0.5
	}
	accepts := make([]int, dim)

	cols := make([][]float64, dim)
	for j := range cols {
		cols[j] = make([]float64, 0, cfg.Iterations)
	}
	row := make([]float64, dim)

	lp := post.logProb(theta)
	total := cfg.Warmup + cfg.Iterations
	for iter := 0; iter < total; iter++ {
		if iter%64 == 0 {
			select {
			case <-ctx.Done():
				return chainResult{chain: chain, err: ctx.Err()}
			default:
			}
		}

		for j := 0; j < dim; j++ {
			old := theta[j]
			theta[j] = old + scales[j]*rng.NormFloat64()
			lpNew := post.logProb(theta)
			// A NaN log probability fails this comparison and is rejected.
			if lpNew-lp > math.Log(rng.Float64()) {
				lp = lpNew
				accepts[j]++
			} else {
				theta[j] = old
			}
		}

		if iter < cfg.Warmup && (iter+1)%adaptWindow == 0 {
			for j := range scales {
				rate := float64(accepts[j]) / adaptWindow
				scales[j] *= math.Exp(1.5 * (rate - cfg.TargetAccept))
				accepts[j] = 0
			}
		}

		if iter >= cfg.Warmup {
			post.constrain(theta, row)
			for j := 0; j < dim; j++ {
				cols[j] = append(cols[j], row[j])
			}
		}

		if cfg.Progress != nil && (iter+1)%100 == 0 {
			cfg.Progress(100)
		}
	}
	if cfg.Progress != nil && total%100 != 0 {
		cfg.Progress(total % 100)
	}

	return chainResult{chain: chain, cols: cols}
}
