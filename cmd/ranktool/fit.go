package main

import (
	"context"

	"github.com/randomjohn/stan-nfl/internal/tools/fitranks"
)

type fitCmd struct {
	dataFlags
	samplerFlags
}

func (cmd *fitCmd) Run() error {
	ctx := fitranks.NewContext(context.Background())
	ctx.RosterFile = cmd.Roster
	ctx.GamesFile = cmd.Games
	ctx.Model = cmd.spec()
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	ctx.Config = cfg
	ctx.Interactive = cmd.Interactive
	ctx.NoProgress = cmd.NoProgress
	return fitranks.FitRanks(ctx)
}
