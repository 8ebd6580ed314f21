package main

import (
	"context"

	"github.com/randomjohn/stan-nfl/internal/rank"
	"github.com/randomjohn/stan-nfl/internal/tools/predictgames"
)

type predictCmd struct {
	dataFlags
	samplerFlags
	Upcoming string `help:"Upcoming games file (CSV or XLSX)." required:"" type:"existingfile"`
	Quick    bool   `help:"Predict from posterior means with a normal approximation instead of simulating the posterior predictive."`
}

func (cmd *predictCmd) Run() error {
	ctx := predictgames.NewContext(context.Background())
	ctx.RosterFile = cmd.Roster
	ctx.GamesFile = cmd.Games
	ctx.UpcomingFile = cmd.Upcoming
	ctx.Model = cmd.spec()
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	ctx.Config = cfg
	ctx.Quick = cmd.Quick
	ctx.Interactive = cmd.Interactive
	ctx.NoProgress = cmd.NoProgress
	ctx.Cache = rank.NewFitCache()
	return predictgames.PredictGames(ctx)
}
