package fitranks

import (
	"context"

	"github.com/randomjohn/stan-nfl/internal/rank"
)

type Context struct {
	context.Context

	RosterFile string
	GamesFile  string

	Model  rank.ModelSpec
	Config rank.Config

	Interactive bool
	NoProgress  bool
}

func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx, Config: rank.DefaultConfig()}
}
