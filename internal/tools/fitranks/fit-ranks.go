package fitranks

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	progressbar "github.com/schollz/progressbar/v3"

	"github.com/randomjohn/stan-nfl/internal/nfldata"
	"github.com/randomjohn/stan-nfl/internal/rank"
	"github.com/randomjohn/stan-nfl/internal/tools/repairnames"
)

// FitRanks fits the selected model variant to a season's results and prints
// the posterior team quality table.
func FitRanks(ctx *Context) error {
	log.Print("Fitting team qualities")

	entries, err := nfldata.LoadRoster(ctx.RosterFile)
	if err != nil {
		return fmt.Errorf("FitRanks: unable to load roster: %w", err)
	}
	roster, err := rank.NewRoster(entries)
	if err != nil {
		return fmt.Errorf("FitRanks: unable to build roster: %w", err)
	}
	log.Printf("roster loaded: %d teams", roster.Len())

	games, err := nfldata.LoadGames(ctx.GamesFile)
	if err != nil {
		return fmt.Errorf("FitRanks: unable to load games: %w", err)
	}
	log.Printf("completed games loaded: %d", len(games))

	if ctx.Interactive {
		games, err = repairnames.GameRows(roster, games)
		if err != nil {
			return fmt.Errorf("FitRanks: %w", err)
		}
	}

	data, err := rank.BuildDataset(roster, games)
	if err != nil {
		return fmt.Errorf("FitRanks: unable to build dataset: %w", err)
	}

	cfg := ctx.Config
	total := int64(cfg.Chains * (cfg.Warmup + cfg.Iterations))
	bar := progressbar.NewOptions64(total, progressbar.OptionSetVisibility(!ctx.NoProgress))
	cfg.Progress = func(n int) {
		bar.Add(n)
	}

	log.Printf("sampling %s model: %d chains x (%d warmup + %d kept)", ctx.Model, cfg.Chains, cfg.Warmup, cfg.Iterations)
	fit, err := rank.FitModel(ctx, data, ctx.Model, cfg)
	var warning *rank.ConvergenceWarning
	if errors.As(err, &warning) {
		log.Printf("WARNING: %v; summaries below may be unreliable", warning)
	} else if err != nil {
		return fmt.Errorf("FitRanks: unable to fit model: %w", err)
	}

	summaries, err := fit.TeamSummaries()
	if err != nil {
		return fmt.Errorf("FitRanks: unable to summarize fit: %w", err)
	}
	prettyPrint(summaries)

	log.Printf("Done")
	return nil
}

func prettyPrint(summaries []rank.TeamSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].PosteriorMean > summaries[j].PosteriorMean
	})

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Team", "Preseason Rank", "Quality", "SE"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Team, s.PreseasonRank, fmt.Sprintf("%0.3f", s.PosteriorMean), fmt.Sprintf("%0.3f", s.PosteriorSE)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
