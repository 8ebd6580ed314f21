package exportxlsx

import (
	"context"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

type Context struct {
	context.Context

	RosterFile   string
	GamesFile    string
	UpcomingFile string
	OutputFile   string

	Model  rank.ModelSpec
	Config rank.Config

	NoProgress bool
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx, Config: rank.DefaultConfig()}
}
