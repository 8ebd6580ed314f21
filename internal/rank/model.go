package rank

// ModelSpec selects which structural terms the generative model carries. The
// three variants are nested: the base model has neither term, the home-field
// model adds a global home advantage, and the injury model adds a global
// injury coefficient on top of the home advantage. One model builder handles
// all three so the shared likelihood and transform logic cannot drift apart.
type ModelSpec struct {
	UseHomeAdvantage   bool
	UseInjuryAdvantage bool
}

// The three model variants.
var (
	BaseModel      = ModelSpec{}
	HomeFieldModel = ModelSpec{UseHomeAdvantage: true}
	InjuryModel    = ModelSpec{UseHomeAdvantage: true, UseInjuryAdvantage: true}
)

// normalize forces the nesting: the injury term is only defined on top of the
// home-field term.
func (s ModelSpec) normalize() ModelSpec {
	if s.UseInjuryAdvantage {
		s.UseHomeAdvantage = true
	}
	return s
}

func (s ModelSpec) String() string {
	switch {
	case s.UseInjuryAdvantage:
		return "injury"
	case s.UseHomeAdvantage:
		return "homefield"
	default:
		return "base"
	}
}

// Config carries the sampler and prior settings for one fit.
type Config struct {
	// DF is the degrees of freedom of the Student-t observation likelihood.
	// Low values down-weight outlier blowout games without discarding them.
	DF float64 `yaml:"df"`

	// HomeSigma is the scale of the Normal prior on the home advantage in the
	// injury variant. The home-field variant uses a fixed StudentT(3, 0, 1).
	HomeSigma float64 `yaml:"home_sigma"`

	// InjSigma is the scale of the Normal prior on the injury coefficient.
	InjSigma float64 `yaml:"inj_sigma"`

	// Iterations is the number of posterior draws kept per chain after warmup.
	Iterations int `yaml:"iterations"`

	// Warmup is the number of adaptation iterations discarded per chain.
	Warmup int `yaml:"warmup"`

	// Chains is the number of independent chains run in parallel.
	Chains int `yaml:"chains"`

	// TargetAccept is the per-coordinate acceptance rate the warmup
	// adaptation steers toward.
	TargetAccept float64 `yaml:"target_accept"`

	// RHatThreshold is the potential-scale-reduction value above which the
	// fit is flagged with a ConvergenceWarning.
	RHatThreshold float64 `yaml:"rhat_threshold"`

	// Seed seeds the chains deterministically. A negative seed draws one from
	// the wall clock.
	Seed int64 `yaml:"seed"`

	// Progress, if set, is called periodically from each chain with the
	// number of iterations completed since the last call. It must be safe
	// for concurrent use.
	Progress func(n int) `yaml:"-"`
}

// DefaultConfig returns the stock sampler settings: a Student-t likelihood
// with 7 degrees of freedom, weak structural priors, and four chains of 2000
// kept draws each.
func DefaultConfig() Config {
	return Config{
		DF:            7,
		HomeSigma:     3,
		InjSigma:      1,
		Iterations:    2000,
		Warmup:        1000,
		Chains:        4,
		TargetAccept:  0.44,
		RHatThreshold: 1.1,
		Seed:          -1,
	}
}
