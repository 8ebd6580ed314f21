package main

import (
	"context"

	"github.com/randomjohn/stan-nfl/internal/tools/exportxlsx"
)

type exportCmd struct {
	dataFlags
	samplerFlags
	Upcoming string `help:"Upcoming games file (CSV or XLSX)." required:"" type:"existingfile"`
	Output   string `help:"Output workbook path." default:"predictions.xlsx"`
}

func (cmd *exportCmd) Run() error {
	ctx := exportxlsx.NewContext(context.Background())
	ctx.RosterFile = cmd.Roster
	ctx.GamesFile = cmd.Games
	ctx.UpcomingFile = cmd.Upcoming
	ctx.OutputFile = cmd.Output
	ctx.Model = cmd.spec()
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	ctx.Config = cfg
	ctx.NoProgress = cmd.NoProgress
	return exportxlsx.Export(ctx)
}
