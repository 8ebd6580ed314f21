package exportxlsx

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	progressbar "github.com/schollz/progressbar/v3"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/exp/rand"

	"github.com/randomjohn/stan-nfl/internal/nfldata"
	"github.com/randomjohn/stan-nfl/internal/rank"
)

// Export fits the selected model, predicts the upcoming games, and writes
// both tables to an Excel workbook: one sheet of team qualities and one of
// game predictions.
func Export(ctx *Context) error {
	log.Print("Exporting ratings and predictions")

	entries, err := nfldata.LoadRoster(ctx.RosterFile)
	if err != nil {
		return fmt.Errorf("Export: unable to load roster: %w", err)
	}
	roster, err := rank.NewRoster(entries)
	if err != nil {
		return fmt.Errorf("Export: unable to build roster: %w", err)
	}
	games, err := nfldata.LoadGames(ctx.GamesFile)
	if err != nil {
		return fmt.Errorf("Export: unable to load games: %w", err)
	}
	upcoming, err := nfldata.LoadUpcoming(ctx.UpcomingFile)
	if err != nil {
		return fmt.Errorf("Export: unable to load upcoming games: %w", err)
	}

	data, err := rank.BuildDataset(roster, games)
	if err != nil {
		return fmt.Errorf("Export: unable to build dataset: %w", err)
	}
	matchups, err := rank.ResolveUpcoming(roster, upcoming)
	if err != nil {
		return fmt.Errorf("Export: unable to resolve upcoming games: %w", err)
	}

	cfg := ctx.Config
	total := int64(cfg.Chains * (cfg.Warmup + cfg.Iterations))
	bar := progressbar.NewOptions64(total, progressbar.OptionSetVisibility(!ctx.NoProgress))
	cfg.Progress = func(n int) {
		bar.Add(n)
	}

	fit, err := rank.FitModel(ctx, data, ctx.Model, cfg)
	var warning *rank.ConvergenceWarning
	if errors.As(err, &warning) {
		log.Printf("WARNING: %v; exported numbers may be unreliable", warning)
	} else if err != nil {
		return fmt.Errorf("Export: unable to fit model: %w", err)
	}

	seed := cfg.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	spreads, err := rank.SimulateSpreads(fit, matchups, rand.NewSource(uint64(seed)))
	if err != nil {
		return fmt.Errorf("Export: unable to simulate spreads: %w", err)
	}
	predictions, err := rank.SummarizePredictions(fit, matchups, spreads)
	if err != nil {
		return fmt.Errorf("Export: unable to summarize predictions: %w", err)
	}
	summaries, err := fit.TeamSummaries()
	if err != nil {
		return fmt.Errorf("Export: unable to summarize fit: %w", err)
	}

	outExcel, err := makeWorkbook(summaries, predictions)
	if err != nil {
		return fmt.Errorf("Export: unable to build workbook: %w", err)
	}
	if err := outExcel.SaveAs(ctx.OutputFile); err != nil {
		return fmt.Errorf("Export: unable to write %s: %w", ctx.OutputFile, err)
	}

	log.Printf("wrote %s", ctx.OutputFile)
	return nil
}

func makeWorkbook(summaries []rank.TeamSummary, predictions []rank.GamePrediction) (*excelize.File, error) {
	outExcel := excelize.NewFile()
	teamSheet := outExcel.GetSheetName(outExcel.GetActiveSheetIndex())
	if err := outExcel.SetSheetName(teamSheet, "Teams"); err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].PosteriorMean > summaries[j].PosteriorMean
	})
	if err := addRow(outExcel, "Teams", 0, []string{"Team", "Preseason Rank", "Quality", "SE"}); err != nil {
		return nil, err
	}
	for i, s := range summaries {
		row := []string{s.Team, fmt.Sprintf("%d", s.PreseasonRank), fmt.Sprintf("%0.4f", s.PosteriorMean), fmt.Sprintf("%0.4f", s.PosteriorSE)}
		if err := addRow(outExcel, "Teams", i+1, row); err != nil {
			return nil, err
		}
	}

	if _, err := outExcel.NewSheet("Predictions"); err != nil {
		return nil, err
	}
	header := []string{"Week", "Home", "Visiting", "Win Prob.", "Spread", "SE", "10%", "25%", "50%", "75%", "90%"}
	if err := addRow(outExcel, "Predictions", 0, header); err != nil {
		return nil, err
	}
	for i, p := range predictions {
		row := []string{
			fmt.Sprintf("%d", p.Week), p.HomeTeam, p.VisitingTeam,
			fmt.Sprintf("%0.4f", p.WinProbability),
			fmt.Sprintf("%0.2f", p.Spread),
			fmt.Sprintf("%0.2f", p.SE),
		}
		for _, q := range p.Quantiles {
			row = append(row, fmt.Sprintf("%0.1f", q))
		}
		if err := addRow(outExcel, "Predictions", i+1, row); err != nil {
			return nil, err
		}
	}

	return outExcel, nil
}

func addRow(outExcel *excelize.File, sheetName string, row int, cells []string) error {
	for col, str := range cells {
		index, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return err
		}
		if err := outExcel.SetCellStr(sheetName, index, str); err != nil {
			return err
		}
	}
	return nil
}
