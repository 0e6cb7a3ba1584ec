package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/shopt/getopt"
)

var (
	ErrFormat = getopt.NewError("unsupported output format")
	ErrEncode = getopt.NewError("encode result")
)

// Result is the outcome of one parse: the values of every option that
// occurred, and the remaining positional arguments.
type Result struct {
	// Options maps each set option's binding key to its value.
	Options map[string]any `json:"options"   yaml:"options"`
	// Aliases maps every alias of each set option to its value.
	Aliases map[string]any `json:"aliases"   yaml:"aliases"`
	// Arguments holds the positional arguments in order.
	Arguments []string `json:"arguments" yaml:"arguments"`

	entries []entry
}

// entry is one set option in declaration order, for text output.
type entry struct {
	flag   string
	values []any
}

// From collects the values held by the options of sig after a parse that
// returned args. Options that did not occur are omitted.
func From(sig *getopt.Signature, args []string) Result {
	r := Result{
		Options:   map[string]any{},
		Aliases:   map[string]any{},
		Arguments: append([]string{}, args...),
	}

	for opt := range sig.Options().Options() {
		if !opt.IsSet() {
			continue
		}

		value := opt.Value()
		r.Options[opt.Key()] = value

		for _, name := range opt.Names() {
			r.Aliases[name] = value
		}

		r.entries = append(r.entries, entry{flag: canonical(opt), values: opt.Values()})
	}

	return r
}

// canonical returns the flag used to print opt: its first long alias if it
// has one.
func canonical(opt *getopt.Option) string {
	if long := opt.Long(); len(long) > 0 {
		return getopt.Flag(long[0])
	}

	return opt.Flags()[0]
}

// Has reports whether the option with the given key or alias was set.
func (r Result) Has(name string) bool {
	name = strings.TrimLeft(name, "-")

	if _, ok := r.Options[name]; ok {
		return true
	}

	_, ok := r.Aliases[name]

	return ok
}

// Format is an output encoding for a [Result].
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
	FormatYAML               // yaml
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Formats returns an iterator over the names of all output formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatText, FormatJSON, FormatYAML} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}

	return FormatText, ErrFormat.With(slog.String("format", s))
}

// Write encodes r to w. For JSON and YAML, indent is the indent width; zero
// selects compact JSON and flow-style YAML. Text output ignores indent.
func (r Result) Write(ctx context.Context, w io.Writer, format Format, indent int) error {
	if format == FormatText {
		return wrapEncode(r.writeText(w), format)
	}

	return WriteValue(ctx, w, r, format, indent)
}

// WriteValue encodes v, such as the value of a query, to w. Text output
// prints a string verbatim and any other value as flow-style YAML, each on
// one line.
func WriteValue(ctx context.Context, w io.Writer, v any, format Format, indent int) error {
	var err error

	switch format {
	case FormatText:
		if s, ok := v.(string); ok {
			_, err = io.WriteString(w, s+"\n")
		} else {
			err = writeYAML(ctx, w, v, 0)
		}
	case FormatJSON:
		err = writeJSON(w, v, indent)
	case FormatYAML:
		err = writeYAML(ctx, w, v, indent)
	default:
		return ErrFormat.With(slog.String("format", format.String()))
	}

	return wrapEncode(err, format)
}

func wrapEncode(err error, format Format) error {
	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", format.String()))
	}

	return nil
}

func writeJSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(v)
}

func writeYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	b, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

// writeText prints one line per option occurrence, as "--flag",
// "--flag=value" or "-f value", then a "--" line followed by one line per
// positional argument.
func (r Result) writeText(w io.Writer) error {
	var b strings.Builder

	for _, e := range r.entries {
		for _, v := range e.values {
			s, ok := v.(string)

			switch {
			case !ok:
				fmt.Fprintln(&b, e.flag)
			case strings.HasPrefix(e.flag, "--"):
				fmt.Fprintf(&b, "%s=%s\n", e.flag, s)
			default:
				fmt.Fprintf(&b, "%s %s\n", e.flag, s)
			}
		}
	}

	if len(r.Arguments) > 0 {
		b.WriteString("--\n")

		for _, arg := range r.Arguments {
			b.WriteString(arg)
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}
