package predictgames

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	progressbar "github.com/schollz/progressbar/v3"
	"golang.org/x/exp/rand"

	"github.com/randomjohn/stan-nfl/internal/nfldata"
	"github.com/randomjohn/stan-nfl/internal/rank"
	"github.com/randomjohn/stan-nfl/internal/tools/repairnames"
)

// PredictGames fits the selected model variant and forecasts the upcoming
// games from the posterior predictive distribution.
func PredictGames(ctx *Context) error {
	log.Print("Predicting upcoming games")

	entries, err := nfldata.LoadRoster(ctx.RosterFile)
	if err != nil {
		return fmt.Errorf("PredictGames: unable to load roster: %w", err)
	}
	roster, err := rank.NewRoster(entries)
	if err != nil {
		return fmt.Errorf("PredictGames: unable to build roster: %w", err)
	}
	games, err := nfldata.LoadGames(ctx.GamesFile)
	if err != nil {
		return fmt.Errorf("PredictGames: unable to load games: %w", err)
	}
	upcoming, err := nfldata.LoadUpcoming(ctx.UpcomingFile)
	if err != nil {
		return fmt.Errorf("PredictGames: unable to load upcoming games: %w", err)
	}
	log.Printf("loaded %d teams, %d completed games, %d upcoming games", roster.Len(), len(games), len(upcoming))

	if ctx.Interactive {
		if games, err = repairnames.GameRows(roster, games); err != nil {
			return fmt.Errorf("PredictGames: %w", err)
		}
		if upcoming, err = repairnames.UpcomingRows(roster, upcoming); err != nil {
			return fmt.Errorf("PredictGames: %w", err)
		}
	}

	data, err := rank.BuildDataset(roster, games)
	if err != nil {
		return fmt.Errorf("PredictGames: unable to build dataset: %w", err)
	}
	matchups, err := rank.ResolveUpcoming(roster, upcoming)
	if err != nil {
		return fmt.Errorf("PredictGames: unable to resolve upcoming games: %w", err)
	}

	fit, err := fitOrGet(ctx, data)
	if err != nil {
		return err
	}

	if ctx.Quick {
		model, err := rank.NewQuickSpreadModel(fit)
		if err != nil {
			return fmt.Errorf("PredictGames: unable to build quick model: %w", err)
		}
		prettyPrintQuick(roster, matchups, model)
		log.Printf("Done")
		return nil
	}

	seed := ctx.Config.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	spreads, err := rank.SimulateSpreads(fit, matchups, rand.NewSource(uint64(seed)))
	if err != nil {
		return fmt.Errorf("PredictGames: unable to simulate spreads: %w", err)
	}
	predictions, err := rank.SummarizePredictions(fit, matchups, spreads)
	if err != nil {
		return fmt.Errorf("PredictGames: unable to summarize predictions: %w", err)
	}
	prettyPrint(predictions)

	log.Printf("Done")
	return nil
}

// fitOrGet fits the model, going through the context's cache when one is
// attached so repeated predictions over the same season do not refit.
func fitOrGet(ctx *Context, data *rank.Dataset) (*rank.Fit, error) {
	cfg := ctx.Config
	var key uint64
	if ctx.Cache != nil {
		key = ctx.Cache.Key(data, ctx.Model, cfg)
		if fit, ok := ctx.Cache.Get(key); ok {
			log.Print("reusing cached fit")
			return fit, nil
		}
	}

	total := int64(cfg.Chains * (cfg.Warmup + cfg.Iterations))
	bar := progressbar.NewOptions64(total, progressbar.OptionSetVisibility(!ctx.NoProgress))
	cfg.Progress = func(n int) {
		bar.Add(n)
	}

	log.Printf("sampling %s model: %d chains x (%d warmup + %d kept)", ctx.Model, cfg.Chains, cfg.Warmup, cfg.Iterations)
	fit, err := rank.FitModel(ctx, data, ctx.Model, cfg)
	var warning *rank.ConvergenceWarning
	if errors.As(err, &warning) {
		log.Printf("WARNING: %v; predictions below may be unreliable", warning)
	} else if err != nil {
		return nil, fmt.Errorf("PredictGames: unable to fit model: %w", err)
	}

	if ctx.Cache != nil {
		ctx.Cache.Put(key, fit)
	}
	return fit, nil
}

func prettyPrint(predictions []rank.GamePrediction) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Week", "Home", "Visiting", "Win Prob.", "Spread", "SE", "10%", "25%", "50%", "75%", "90%"})
	for _, p := range predictions {
		row := table.Row{p.Week, p.HomeTeam, p.VisitingTeam,
			fmt.Sprintf("%0.4f", p.WinProbability),
			fmt.Sprintf("%0.2f", p.Spread),
			fmt.Sprintf("%0.2f", p.SE)}
		for _, q := range p.Quantiles {
			row = append(row, fmt.Sprintf("%0.1f", q))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func prettyPrintQuick(roster *rank.Roster, matchups []rank.Matchup, model *rank.QuickSpreadModel) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Week", "Home", "Visiting", "Win Prob.", "Spread"})
	for _, m := range matchups {
		prob, spread := model.Predict(m)
		t.AppendRow(table.Row{m.Week, roster.Name(m.Home), roster.Name(m.Visiting),
			fmt.Sprintf("%0.4f", prob), fmt.Sprintf("%0.2f", spread)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
