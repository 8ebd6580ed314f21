package main

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

type dataFlags struct {
	Roster string `help:"Roster file with team and preseason rank columns (CSV or XLSX)." required:"" type:"existingfile"`
	Games  string `help:"Completed games file (CSV or XLSX)." required:"" type:"existingfile"`
}

type samplerFlags struct {
	Variant     string `help:"Model variant." default:"homefield" enum:"base,homefield,injury"`
	Settings    string `help:"YAML file of sampler settings; values in it override the flags below." type:"existingfile" optional:""`
	Iterations  int    `help:"Posterior draws kept per chain." default:"2000"`
	Warmup      int    `help:"Warmup iterations per chain." default:"1000"`
	Chains      int    `help:"Number of parallel chains." default:"4"`
	DF          float64 `help:"Student-t degrees of freedom of the observation likelihood." default:"7"`
	Seed        int64  `help:"Random seed; negative draws one from the clock." default:"-1"`
	NoProgress  bool   `help:"Suppress the progress bar."`
	Interactive bool   `help:"Interactively repair team names that do not match the roster."`
}

func (f samplerFlags) spec() rank.ModelSpec {
	switch f.Variant {
	case "base":
		return rank.BaseModel
	case "injury":
		return rank.InjuryModel
	default:
		return rank.HomeFieldModel
	}
}

func (f samplerFlags) config() (rank.Config, error) {
	cfg := rank.DefaultConfig()
	cfg.Iterations = f.Iterations
	cfg.Warmup = f.Warmup
	cfg.Chains = f.Chains
	cfg.DF = f.DF
	cfg.Seed = f.Seed

	if f.Settings != "" {
		slurp, err := os.ReadFile(f.Settings)
		if err != nil {
			return cfg, fmt.Errorf("unable to read settings file %q: %w", f.Settings, err)
		}
		if err := yaml.Unmarshal(slurp, &cfg); err != nil {
			return cfg, fmt.Errorf("unable to parse settings file %q: %w", f.Settings, err)
		}
	}
	return cfg, nil
}
