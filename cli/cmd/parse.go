package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/shopt/log"
	"github.com/ardnew/shopt/query"
	"github.com/ardnew/shopt/report"
)

// Parse parses a command line against a signature and prints the result.
type Parse struct {
	Source `embed:""`

	Format string `default:"text" enum:"${formatEnum}" help:"Output format (${enum})."                          short:"f"`
	Indent int    `default:"2"                          help:"Indent width for json and yaml; 0 is compact."   short:"i"`
	Query  string `                                     help:"Print the value of an expression over the result." placeholder:"EXPR" short:"q"`

	Tokens []string `arg:"" help:"Command line to parse; place it after --." optional:"" passthrough:""`
}

// tokens returns the command line to parse. kong keeps the "--" that ends
// shopt's own flags in a passthrough argument; it is not part of the line.
func (p *Parse) tokens() []string {
	if len(p.Tokens) > 0 && p.Tokens[0] == "--" {
		return p.Tokens[1:]
	}

	return p.Tokens
}

// Vars returns the kong variables referenced by the command tags.
func Vars() kong.Vars {
	return kong.Vars{
		"formatEnum": strings.Join(slices.Collect(report.Formats()), ","),
	}
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	streams := streamsFrom(ctx)

	format, err := report.ParseFormat(p.Format)
	if err != nil {
		return err
	}

	// Compile before parsing so a bad query fails without side effects.
	var program *query.Program
	if p.Query != "" {
		if program, err = query.Compile(p.Query); err != nil {
			return err
		}
	}

	sig, err := p.signature(ctx)
	if err != nil {
		return err
	}

	args, err := sig.ParseOptions(p.tokens())
	if err != nil {
		fmt.Fprintln(streams.Err, report.Explain(err))

		return ErrParse.Wrap(err).With(slog.String("signature", sig.Name))
	}

	result := report.From(sig, args)

	log.DebugContext(ctx, "parsed",
		slog.Int("options", len(result.Options)),
		slog.Int("arguments", len(result.Arguments)),
	)

	if program == nil {
		return result.Write(ctx, streams.Out, format, p.Indent)
	}

	value, err := program.Run(result)
	if err != nil {
		return err
	}

	return report.WriteValue(ctx, streams.Out, value, format, p.Indent)
}
