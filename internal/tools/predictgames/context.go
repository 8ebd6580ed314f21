package predictgames

import (
	"context"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

type Context struct {
	context.Context

	RosterFile   string
	GamesFile    string
	UpcomingFile string

	Model  rank.ModelSpec
	Config rank.Config

	// Quick skips the posterior predictive simulation and predicts from
	// posterior means with a normal approximation.
	Quick bool

	Interactive bool
	NoProgress  bool

	// Cache, if set, reuses fits across calls with identical data and
	// settings.
	Cache *rank.FitCache
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx, Config: rank.DefaultConfig()}
}
