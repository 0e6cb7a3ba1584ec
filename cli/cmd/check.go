package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/shopt/log"
	"github.com/ardnew/shopt/report"
)

// Check validates a signature document and lists what it declares.
type Check struct {
	Source `embed:""`

	Quiet bool `help:"Only validate; print nothing." short:"q"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	sig, err := c.signature(ctx)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "signature valid", slog.Any("signature", sig))

	if c.Quiet {
		return nil
	}

	out := streamsFrom(ctx).Out

	if sig.Name != "" {
		fmt.Fprintln(out, sig.Name)
	}

	if sig.Help != "" {
		fmt.Fprintln(out, sig.Help)
	}

	if sig.OptionsPosition >= 0 {
		fmt.Fprintf(out, "options parameter: %d %s\n", sig.OptionsPosition, sig.OptionsType)
	}

	if table := report.Table(sig); table != "" {
		fmt.Fprintln(out, table)
	}

	return nil
}
