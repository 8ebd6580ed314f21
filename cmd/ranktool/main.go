package main

import (
	"github.com/alecthomas/kong"
)

var CLI struct {
	Fit     fitCmd     `cmd:"" help:"Fit a team quality model and print the posterior ratings."`
	Predict predictCmd `cmd:"" help:"Fit a model and forecast upcoming games."`
	Export  exportCmd  `cmd:"" help:"Fit, predict, and write ratings and forecasts to an Excel workbook."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ranktool"),
		kong.Description("RankTool: Bayesian NFL team quality estimation and game forecasting from partial-season results."))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
