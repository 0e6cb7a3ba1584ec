package getopt

import (
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mode is the argument cardinality of an [Option].
type Mode int

const (
	ModeNone     Mode = iota // none
	ModeRequired             // required
	ModeOptional             // optional
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeRequired:
		return "required"
	case ModeOptional:
		return "optional"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Modes returns an iterator over the names of all argument modes.
func Modes() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range []Mode{ModeNone, ModeRequired, ModeOptional} {
			if !yield(m.String()) {
				return
			}
		}
	}
}

// ParseMode parses the name of an argument mode. The empty string is
// [ModeNone].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "no":
		return ModeNone, nil
	case "required", "require", "req":
		return ModeRequired, nil
	case "optional", "opt":
		return ModeOptional, nil
	}

	return ModeNone, ErrInvalidMode.With(slog.String("mode", s))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = mode

	return nil
}

const (
	shortPrefix = "-"
	longPrefix  = "--"
)

// Option is the definition of one logical command-line option together with
// the values recorded for it during a parse.
//
// An Option may be known by several aliases. Every alias refers to the same
// Option, so the value read through any of them is identical.
type Option struct {
	names    []string
	key      string
	help     string
	mode     Mode
	multiple bool
	value    any
}

// OptionFunc configures an [Option] created by [NewOption].
type OptionFunc func(*Option)

// NewOption returns a new Option declared with the comma-separated aliases in
// decl, e.g. "f,foo" or "-f, --foo". Leading dashes are stripped from each
// alias; a single-character alias is short and anything longer is long.
//
// The Option defaults to [ModeNone] and single occurrence.
func NewOption(decl string, opts ...OptionFunc) *Option {
	o := &Option{names: SplitNames(decl)}

	for _, opt := range opts {
		opt(o)
	}

	if o.key == "" {
		o.key = defaultKey(o.names)
	}

	return o
}

// WithMode sets the argument mode.
func WithMode(mode Mode) OptionFunc {
	return func(o *Option) { o.mode = mode }
}

// WithMultiple sets whether successive occurrences accumulate.
func WithMultiple(multiple bool) OptionFunc {
	return func(o *Option) { o.multiple = multiple }
}

// WithKey sets the binding key used by collaborators to map the option onto
// a named target. The parser itself never reads it.
func WithKey(key string) OptionFunc {
	return func(o *Option) { o.key = key }
}

// WithHelp sets the option's description.
func WithHelp(help string) OptionFunc {
	return func(o *Option) { o.help = help }
}

// SplitNames splits an alias declaration into dash-less alias names.
// Empty and repeated aliases are dropped.
func SplitNames(decl string) []string {
	names := make([]string, 0, strings.Count(decl, ",")+1)

	for part := range strings.SplitSeq(decl, ",") {
		name := strings.TrimLeft(strings.TrimSpace(part), shortPrefix)
		if name == "" || slices.Contains(names, name) {
			continue
		}

		names = append(names, name)
	}

	return names
}

// IsShort reports whether name is a short (single-character) alias.
func IsShort(name string) bool {
	return utf8.RuneCountInString(name) == 1
}

// Flag returns name in its dash form: "-x" for short aliases and
// "--name" for long aliases.
func Flag(name string) string {
	if IsShort(name) {
		return shortPrefix + name
	}

	return longPrefix + name
}

// defaultKey prefers the first long alias, with hyphens mapped to
// underscores.
func defaultKey(names []string) string {
	if len(names) == 0 {
		return ""
	}

	key := names[0]

	for _, name := range names {
		if !IsShort(name) {
			key = name

			break
		}
	}

	return strings.ReplaceAll(key, "-", "_")
}

// Names returns the option's aliases in declaration order.
func (o *Option) Names() []string { return slices.Clone(o.names) }

// Flags returns the option's aliases in dash form.
func (o *Option) Flags() []string {
	flags := make([]string, len(o.names))
	for i, name := range o.names {
		flags[i] = Flag(name)
	}

	return flags
}

// Short returns the option's short aliases.
func (o *Option) Short() []string {
	return slices.DeleteFunc(o.Names(), func(s string) bool { return !IsShort(s) })
}

// Long returns the option's long aliases.
func (o *Option) Long() []string {
	return slices.DeleteFunc(o.Names(), IsShort)
}

// Key returns the option's binding key.
func (o *Option) Key() string { return o.key }

// Help returns the option's description.
func (o *Option) Help() string { return o.help }

// Mode returns the option's argument mode.
func (o *Option) Mode() Mode { return o.mode }

// Multiple reports whether successive occurrences accumulate.
func (o *Option) Multiple() bool { return o.multiple }

// IsSet reports whether at least one occurrence was recorded.
func (o *Option) IsSet() bool { return o.value != nil }

// Value returns the recorded value: nil if unset, true for a valueless
// occurrence, or the string argument. If the option accepts multiple
// occurrences, the value is a []any holding each occurrence in order.
func (o *Option) Value() any {
	if vs, ok := o.value.([]any); ok {
		return slices.Clone(vs)
	}

	return o.value
}

// Values returns the recorded occurrences as a slice regardless of
// multiplicity. It is empty if the option is unset.
func (o *Option) Values() []any {
	switch v := o.value.(type) {
	case nil:
		return []any{}
	case []any:
		return slices.Clone(v)
	default:
		return []any{v}
	}
}

// Reset discards any recorded value.
func (o *Option) Reset() { o.value = nil }

// record stores one occurrence, replacing the previous value or appending to
// the accumulated sequence.
func (o *Option) record(v any) {
	if !o.multiple {
		o.value = v

		return
	}

	vs, _ := o.value.([]any)
	o.value = append(vs, v)
}

// LogValue implements slog.LogValuer.
func (o *Option) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("names", o.names),
		slog.String("mode", o.mode.String()),
		slog.Bool("multiple", o.multiple),
	)
}
