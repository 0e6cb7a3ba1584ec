package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/shopt/log"
	"github.com/ardnew/shopt/schema"
)

// defaultIndent is the number of spaces to use for indentation in generated
// documents.
const defaultIndent = 2

// Init writes an example signature document, or with --config, a
// configuration file holding the current flag values.
type Init struct {
	Path   string `arg:""                                                        help:"Output file; stdout if omitted." optional:""`
	Force  bool   `help:"Overwrite an existing file."                                                                      short:"f"`
	Config bool   `help:"Write the configuration file (${config}) instead."`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	path := i.Path

	if i.Config && path == "" {
		ktx := kongContextFrom(ctx)
		if ktx == nil {
			panic("internal error: kong context undefined")
		}

		path = ktx.Model.Vars()[ConfigIdentifier]
	}

	write := func(ctx context.Context, w io.Writer) error {
		if i.Config {
			return i.writeConfig(ctx, w)
		}

		return schema.Example().Encode(ctx, w, defaultIndent)
	}

	if path == "" {
		return write(ctx, streamsFrom(ctx).Out)
	}

	if _, err := os.Stat(path); err == nil && !i.Force {
		return ErrWriteFile.
			With(slog.String("file", path), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWriteFile.With(slog.String("file", path)).Wrap(err)
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteFile.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	if err := write(ctx, file); err != nil {
		return ErrWriteFile.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized file",
		slog.String("path", path),
		slog.Bool("config", i.Config),
	)

	return nil
}

// writeConfig writes the value of every visible flag of the command line,
// except the profiling and help flags, as a YAML configuration mapping.
func (i *Init) writeConfig(ctx context.Context, w io.Writer) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	ignore := []string{"help", "pprof", "version"}
	values := yaml.MapSlice{}

	for _, flag := range ktx.Flags() {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := configValue(ktx.FlagValue(flag)); v != nil {
			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	b, err := yaml.MarshalContext(ctx, values, yaml.Indent(defaultIndent))
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

// configValue returns v as it should appear in a configuration file, or nil
// if it should be left out. Numbers are written as strings since kong parses
// resolved values from their text.
func configValue(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		if rv.Len() == 0 {
			return nil
		}

		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}

		items := make([]any, 0, rv.Len())
		for i := range rv.Len() {
			if item := configValue(rv.Index(i).Interface()); item != nil {
				items = append(items, item)
			}
		}

		return items
	default:
		return nil
	}
}
