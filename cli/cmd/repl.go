package cmd

import (
	"context"

	"github.com/ardnew/shopt/cli/cmd/repl"
	"github.com/ardnew/shopt/log"
)

// Repl parses command lines against a signature interactively.
type Repl struct {
	Source `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	sig, err := r.signature(ctx)
	if err != nil {
		return err
	}

	cacheDir := ""
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, sig, cacheDir, log.Default())
}
