package schema

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/shopt/getopt"
)

// Document is the declarative form of a [getopt.Signature].
//
// Documents are YAML; JSON documents are accepted as well since JSON is a
// subset of YAML.
type Document struct {
	Name            string     `json:"name,omitempty"             yaml:"name,omitempty"`
	Help            string     `json:"help,omitempty"             yaml:"help,omitempty"`
	Options         []Option   `json:"options,omitempty"          yaml:"options,omitempty"`
	Arguments       []Argument `json:"arguments,omitempty"        yaml:"arguments,omitempty"`
	OptionsPosition *int       `json:"options_position,omitempty" yaml:"options_position,omitempty"`
	OptionsType     string     `json:"options_type,omitempty"     yaml:"options_type,omitempty"`
}

// Option declares one option of a [Document].
type Option struct {
	Names    Names  `json:"names"              yaml:"names"`
	Argument string `json:"argument,omitempty" yaml:"argument,omitempty"`
	Multiple bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Key      string `json:"key,omitempty"      yaml:"key,omitempty"`
	Help     string `json:"help,omitempty"     yaml:"help,omitempty"`
}

// Argument declares one positional parameter of a [Document].
type Argument struct {
	Name     string `json:"name"               yaml:"name"`
	Help     string `json:"help,omitempty"     yaml:"help,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Variadic bool   `json:"variadic,omitempty" yaml:"variadic,omitempty"`
}

// Names is the alias list of an [Option]. In a document it is written
// either as a declaration string ("f,foo") or as a sequence ([f, foo]).
type Names []string

// UnmarshalYAML implements [yaml.InterfaceUnmarshaler].
func (n *Names) UnmarshalYAML(unmarshal func(any) error) error {
	var decl string
	if err := unmarshal(&decl); err == nil {
		*n = getopt.SplitNames(decl)

		return nil
	}

	var list []string
	if err := unmarshal(&list); err != nil {
		return err
	}

	names := make(Names, 0, len(list))

	for _, item := range list {
		split := getopt.SplitNames(item)
		if len(split) == 0 {
			// Keep the empty alias so that Validate can report it.
			split = []string{""}
		}

		names = append(names, split...)
	}

	*n = names

	return nil
}

// Load decodes a document from r. Unknown fields are rejected.
func Load(r io.Reader) (*Document, error) {
	var doc Document

	if err := yaml.NewDecoder(r, yaml.Strict()).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrDecode.With(slog.String("reason", "empty document"))
		}

		return nil, ErrDecode.Wrap(err)
	}

	return &doc, nil
}

// LoadFile decodes the document at path. The path "-" reads standard input.
func LoadFile(path string) (*Document, error) {
	if path == "-" {
		doc, err := Load(os.Stdin)
		if err != nil {
			return nil, getopt.WrapError(err).With(slog.String("path", "<stdin>"))
		}

		return doc, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, getopt.WrapError(err).With(slog.String("path", path))
	}

	return doc, nil
}

// Encode writes doc to w as YAML with the given indent width.
func (doc *Document) Encode(ctx context.Context, w io.Writer, indent int) error {
	opts := []yaml.EncodeOption{yaml.IndentSequence(true)}
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	b, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

// Position returns the options parameter position, or -1 if the document
// declares none.
func (doc *Document) Position() int {
	if doc.OptionsPosition == nil {
		return -1
	}

	return *doc.OptionsPosition
}

// Validate reports the first structural problem in doc:
//
//   - every option has at least one non-empty alias
//   - no alias belongs to more than one option
//   - argument modes are valid
//   - binding keys are unique
//   - argument names are non-empty and unique
//   - only the last argument is variadic
func (doc *Document) Validate() error {
	aliases := map[string]int{}
	keys := map[string]int{}

	for i, opt := range doc.Options {
		at := slog.Int("option", i)

		if len(opt.Names) == 0 {
			return ErrEmptyName.With(at)
		}

		for _, name := range opt.Names {
			if name == "" {
				return ErrEmptyName.With(at)
			}

			if j, ok := aliases[name]; ok {
				return ErrDuplicateAlias.With(
					slog.String("alias", getopt.Flag(name)),
					slog.String("options", strconv.Itoa(j)+","+strconv.Itoa(i)),
				)
			}

			aliases[name] = i
		}

		if _, err := getopt.ParseMode(opt.Argument); err != nil {
			return ErrInvalidMode.With(at,
				slog.String("argument", opt.Argument),
				slog.String("modes", strings.Join(slices.Collect(getopt.Modes()), ",")),
			)
		}

		key := opt.key()
		if j, ok := keys[key]; ok {
			return ErrDuplicateKey.With(
				slog.String("key", key),
				slog.String("options", strconv.Itoa(j)+","+strconv.Itoa(i)),
			)
		}

		keys[key] = i
	}

	names := map[string]bool{}

	for i, arg := range doc.Arguments {
		if arg.Name == "" {
			return ErrEmptyName.With(slog.Int("argument", i))
		}

		if names[arg.Name] {
			return ErrDuplicateArgument.With(slog.String("argument", arg.Name))
		}

		names[arg.Name] = true

		if arg.Variadic && i != len(doc.Arguments)-1 {
			return ErrVariadicPosition.With(slog.String("argument", arg.Name))
		}
	}

	return nil
}

// key returns the binding key the option will have once built.
func (o Option) key() string {
	return o.build().Key()
}

func (o Option) build() *getopt.Option {
	mode, _ := getopt.ParseMode(o.Argument)

	opts := []getopt.OptionFunc{
		getopt.WithMode(mode),
		getopt.WithMultiple(o.Multiple),
		getopt.WithHelp(o.Help),
	}

	if o.Key != "" {
		opts = append(opts, getopt.WithKey(o.Key))
	}

	return getopt.NewOption(joinNames(o.Names), opts...)
}

func joinNames(names Names) string { return strings.Join(names, ",") }

// Signature validates doc and builds the [getopt.Signature] it describes.
// Extra opts are applied after the document's own settings.
func (doc *Document) Signature(opts ...getopt.SignatureFunc) (*getopt.Signature, error) {
	if err := doc.Validate(); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}

	reg := getopt.NewRegistry()
	for _, opt := range doc.Options {
		reg.Add(opt.build())
	}

	args := make([]getopt.Argument, len(doc.Arguments))
	for i, arg := range doc.Arguments {
		args[i] = getopt.Argument(arg)
	}

	base := []getopt.SignatureFunc{
		getopt.WithName(doc.Name),
		getopt.WithSummary(doc.Help),
		getopt.WithArguments(args...),
		getopt.WithOptionsParameter(doc.Position(), doc.OptionsType),
	}

	return getopt.NewSignature(reg, append(base, opts...)...), nil
}

// Example returns a small document exercising every feature of the format.
func Example() *Document {
	pos := 0

	return &Document{
		Name: "foo-bar:baz",
		Help: "Example command",
		Options: []Option{
			{
				Names:    Names{"f", "foo"},
				Argument: getopt.ModeOptional.String(),
				Multiple: true,
				Help:     "Foo values",
			},
			{
				Names:    Names{"b", "bar"},
				Argument: getopt.ModeRequired.String(),
				Help:     "Bar value",
			},
			{
				Names: Names{"z", "zim"},
				Key:   "zim_enabled",
				Help:  "Enable zim",
			},
		},
		Arguments: []Argument{
			{Name: "path", Help: "Input path"},
			{Name: "extra", Help: "Extra inputs", Optional: true, Variadic: true},
		},
		OptionsPosition: &pos,
		OptionsType:     "BazOptions",
	}
}
