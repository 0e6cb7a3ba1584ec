package getopt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/shopt/log"
)

func bazSignature() *Signature {
	return NewSignature(
		NewRegistry(
			NewOption("f,foo", WithMode(ModeOptional), WithMultiple(true)),
			NewOption("b,bar", WithMode(ModeRequired)),
			NewOption("z"),
		),
		WithName("foo-bar:baz"),
		WithSummary("Example command"),
		WithArguments(
			Argument{Name: "path"},
			Argument{Name: "rest", Optional: true, Variadic: true},
		),
		WithOptionsParameter(0, "BazOptions"),
	)
}

func TestNewSignature_Defaults(t *testing.T) {
	s := NewSignature(nil)

	require.Equal(t, -1, s.OptionsPosition)
	require.False(t, s.HasOptions())
	require.NotNil(t, s.Options())

	args, err := s.ParseOptions([]string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, args)
}

func TestSignature_Metadata(t *testing.T) {
	s := bazSignature()

	require.Equal(t, "foo-bar:baz", s.Name)
	require.Equal(t, "Example command", s.Help)
	require.Equal(t, 0, s.OptionsPosition)
	require.Equal(t, "BazOptions", s.OptionsType)
	require.Len(t, s.Arguments, 2)
	require.True(t, s.Arguments[1].Variadic)
	require.True(t, s.HasOptions())
	require.Equal(t, 3, s.Options().Len())
}

func TestSignature_ParseOptions(t *testing.T) {
	s := bazSignature()

	args, err := s.ParseOptions([]string{"-f", "-zf", "one", "--bar", "two", "path", "--foo=x"})
	require.NoError(t, err)
	require.Equal(t, []string{"path"}, args)

	foo, _ := s.Options().Lookup("foo")
	require.Equal(t, []any{true, "one", "x"}, foo.Value())

	bar, _ := s.Options().Lookup("b")
	require.Equal(t, "two", bar.Value())
}

func TestSignature_ParseString(t *testing.T) {
	tests := []struct {
		name string
		line string
		bar  any
		args []string
	}{
		{"plain", `-b two path`, "two", []string{"path"}},
		{"double quoted", `--bar "two words" path`, "two words", []string{"path"}},
		{"single quoted", `-b 'it''s' "a b"`, "its", []string{"a b"}},
		{"escaped", `--bar=a\ b c\"d`, "a b", []string{`c"d`}},
		{"comment", `-b x # -q`, "x", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := bazSignature()

			args, err := s.ParseString(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.args, args)

			bar, _ := s.Options().Lookup("bar")
			require.Equal(t, tt.bar, bar.Value())
		})
	}
}

func TestSignature_ParseString_SplitError(t *testing.T) {
	s := bazSignature()

	_, err := s.ParseString(`-b "unterminated`)
	require.ErrorIs(t, err, ErrSplit)
}

func TestSignature_ParseString_ParseError(t *testing.T) {
	s := bazSignature()

	_, err := s.ParseString(`-q`)
	require.ErrorIs(t, err, ErrOptionNotDefined)
	require.EqualError(t, err, "-q is not defined.")
}

func TestSignature_Reset(t *testing.T) {
	s := bazSignature()

	_, err := s.ParseString("-z")
	require.NoError(t, err)

	z, _ := s.Options().Lookup("z")
	require.True(t, z.IsSet())

	s.Reset()
	require.False(t, z.IsSet())
}

func TestSignature_TraceLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithPretty(false))
	s := NewSignature(
		NewRegistry(NewOption("z", WithMode(ModeOptional))),
		WithLogger(logger),
	)

	quiet := NewSignature(NewRegistry(NewOption("z", WithMode(ModeOptional))))

	input := []string{"-z", "qux", "--", "x"}

	loud, err := s.ParseOptions(input)
	require.NoError(t, err)

	silent, err := quiet.ParseOptions(input)
	require.NoError(t, err)
	require.Equal(t, silent, loud)

	out := buf.String()
	require.Equal(t, 2, strings.Count(out, "\n"))
	require.Contains(t, out, `"flag":"-z"`)
	require.Contains(t, out, `"kind":"cluster"`)
	require.Contains(t, out, `"value":"qux"`)
	require.Contains(t, out, `"msg":"terminator"`)
}
