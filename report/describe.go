package report

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/shopt/getopt"
)

// Explain returns the message to show a user for a parse failure. Undefined
// options are followed by a line naming the closest defined flags.
func Explain(err error) string {
	if err == nil {
		return ""
	}

	var fe *getopt.FlagError
	if !errors.As(err, &fe) {
		return err.Error()
	}

	msg := fe.Error()
	if s := fe.Suggestions(); len(s) > 0 {
		msg += "\ndid you mean " + strings.Join(s, ", ") + "?"
	}

	return msg
}

// Table renders the options and positional parameters of sig as tables.
// Either table is omitted when empty.
func Table(sig *getopt.Signature) string {
	var parts []string

	if sig.HasOptions() {
		t := newTable("OPTION", "ARGUMENT", "MULTIPLE", "KEY", "HELP")

		for opt := range sig.Options().Options() {
			t.Row(
				strings.Join(opt.Flags(), ", "),
				opt.Mode().String(),
				yes(opt.Multiple()),
				opt.Key(),
				opt.Help(),
			)
		}

		parts = append(parts, t.String())
	}

	if len(sig.Arguments) > 0 {
		t := newTable("ARGUMENT", "OPTIONAL", "VARIADIC", "HELP")

		for _, arg := range sig.Arguments {
			t.Row(arg.Name, yes(arg.Optional), yes(arg.Variadic), arg.Help)
		}

		parts = append(parts, t.String())
	}

	return strings.Join(parts, "\n")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)
}

func yes(b bool) string {
	if b {
		return "yes"
	}

	return ""
}
