package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/shopt/getopt"
)

func TestExplain(t *testing.T) {
	reg := getopt.NewRegistry(getopt.NewOption("force"), getopt.NewOption("q,quiet"))

	_, err := getopt.Parse([]string{"--frce"}, reg)

	got := Explain(err)
	if !strings.HasPrefix(got, "--frce is not defined.\ndid you mean ") {
		t.Errorf("unexpected explanation %q", got)
	}

	if !strings.Contains(got, "--force") {
		t.Errorf("expected --force suggestion in %q", got)
	}

	_, err = getopt.Parse([]string{"--force=1"}, reg)
	if got := Explain(err); got != "--force does not accept an argument." {
		t.Errorf("unexpected explanation %q", got)
	}

	if got := Explain(errors.New("plain")); got != "plain" {
		t.Errorf("unexpected explanation %q", got)
	}

	if got := Explain(nil); got != "" {
		t.Errorf("expected empty explanation, got %q", got)
	}
}

func TestTable(t *testing.T) {
	sig := getopt.NewSignature(
		getopt.NewRegistry(
			getopt.NewOption("f,foo", getopt.WithMode(getopt.ModeOptional), getopt.WithMultiple(true)),
			getopt.NewOption("z", getopt.WithKey("zim_enabled"), getopt.WithHelp("Enable zim")),
		),
		getopt.WithArguments(getopt.Argument{Name: "path", Help: "Input path"}),
	)

	got := Table(sig)

	for _, want := range []string{
		"OPTION", "-f, --foo", "optional", "yes", "zim_enabled", "Enable zim",
		"ARGUMENT", "path", "Input path",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}

	if got := Table(getopt.NewSignature(nil)); got != "" {
		t.Errorf("expected empty table, got %q", got)
	}
}
