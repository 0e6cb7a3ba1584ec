package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/shopt/getopt"
)

func parsed(t *testing.T, tokens ...string) Result {
	t.Helper()

	sig := getopt.NewSignature(getopt.NewRegistry(
		getopt.NewOption("f,foo", getopt.WithMode(getopt.ModeOptional), getopt.WithMultiple(true)),
		getopt.NewOption("b", getopt.WithMode(getopt.ModeRequired)),
		getopt.NewOption("z,zim-gir"),
		getopt.NewOption("unused"),
	))

	args, err := sig.ParseOptions(tokens)
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}

	return From(sig, args)
}

func TestFrom(t *testing.T) {
	r := parsed(t, "-f", "-f", "x", "-b", "y", "--zim-gir", "p", "--", "-q")

	if len(r.Options) != 3 {
		t.Errorf("expected 3 set options, got %v", r.Options)
	}

	if r.Options["zim_gir"] != true || r.Options["b"] != "y" {
		t.Errorf("unexpected options %v", r.Options)
	}

	if _, ok := r.Options["unused"]; ok {
		t.Error("unset option reported")
	}

	for _, alias := range []string{"f", "foo", "b", "z", "zim-gir"} {
		if _, ok := r.Aliases[alias]; !ok {
			t.Errorf("missing alias %q", alias)
		}
	}

	if strings.Join(r.Arguments, " ") != "p -q" {
		t.Errorf("unexpected arguments %q", r.Arguments)
	}

	if !r.Has("--zim-gir") || !r.Has("zim_gir") || !r.Has("-z") || r.Has("unused") {
		t.Error("Has reports wrong membership")
	}
}

func TestFrom_NoArguments(t *testing.T) {
	r := parsed(t)

	if r.Arguments == nil || len(r.Options) != 0 {
		t.Errorf("unexpected empty result %+v", r)
	}
}

func TestParseFormat(t *testing.T) {
	for name := range Formats() {
		f, err := ParseFormat(strings.ToUpper(name))
		if err != nil || f.String() != name {
			t.Errorf("ParseFormat(%q) = %v, %v", name, f, err)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestWrite_Text(t *testing.T) {
	r := parsed(t, "-f", "-f", "x", "-b", "y", "-z", "p", "--", "-q")

	var buf bytes.Buffer
	if err := r.Write(context.Background(), &buf, FormatText, 0); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"--foo",
		"--foo=x",
		"-b y",
		"--zim-gir",
		"--",
		"p",
		"-q",
		"",
	}, "\n")

	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestWrite_JSON(t *testing.T) {
	r := parsed(t, "--foo=a", "-b", "y", "p")

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := r.Write(context.Background(), &buf, FormatJSON, indent); err != nil {
			t.Fatal(err)
		}

		var got struct {
			Options   map[string]any `json:"options"`
			Aliases   map[string]any `json:"aliases"`
			Arguments []string       `json:"arguments"`
		}

		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("indent %d: %v\n%s", indent, err, buf.String())
		}

		foo, _ := got.Options["foo"].([]any)
		if len(foo) != 1 || foo[0] != "a" || got.Aliases["b"] != "y" || got.Arguments[0] != "p" {
			t.Errorf("indent %d: unexpected %+v", indent, got)
		}

		if multiline := strings.Count(buf.String(), "\n") > 1; multiline != (indent > 0) {
			t.Errorf("indent %d: unexpected layout %q", indent, buf.String())
		}
	}
}

func TestWrite_YAML(t *testing.T) {
	r := parsed(t, "-z", "-b", "v", "arg")

	for _, indent := range []int{0, 4} {
		var buf bytes.Buffer
		if err := r.Write(context.Background(), &buf, FormatYAML, indent); err != nil {
			t.Fatal(err)
		}

		var got map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("indent %d: %v\n%s", indent, err, buf.String())
		}

		opts, _ := got["options"].(map[string]any)
		if opts["zim_gir"] != true || opts["b"] != "v" {
			t.Errorf("indent %d: unexpected %v", indent, got)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := parsed(t).Write(context.Background(), &bytes.Buffer{}, Format(42), 0)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestWriteValue(t *testing.T) {
	tests := []struct {
		name   string
		v      any
		format Format
		indent int
		want   string
	}{
		{"text string", "a.out", FormatText, 0, "a.out\n"},
		{"text bool", true, FormatText, 0, "true\n"},
		{"text list", []string{"a", "b"}, FormatText, 2, "[a, b]\n"},
		{"json compact", []any{"a", 1}, FormatJSON, 0, "[\"a\",1]\n"},
		{"json string", "x", FormatJSON, 2, "\"x\"\n"},
		{"yaml scalar", 3, FormatYAML, 2, "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := WriteValue(context.Background(), &buf, tt.v, tt.format, tt.indent); err != nil {
				t.Fatalf("WriteValue: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}
