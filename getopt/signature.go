package getopt

import (
	"log/slog"

	"github.com/google/shlex"

	"github.com/ardnew/shopt/log"
)

// Argument describes one positional parameter of a [Signature].
type Argument struct {
	Name     string
	Help     string
	Optional bool
	Variadic bool
}

// Signature bundles the options a command recognizes with the metadata of
// its positional parameters.
type Signature struct {
	Name      string
	Help      string
	Arguments []Argument

	// OptionsPosition is the index of the options parameter among the
	// command's parameters, or -1 if the command takes no options parameter.
	OptionsPosition int
	// OptionsType names the type that parsed options are bound to.
	OptionsType string

	options *Registry
	logger  log.Logger
}

// SignatureFunc configures a [Signature] created by [NewSignature].
type SignatureFunc func(*Signature)

// NewSignature returns a Signature recognizing the options in reg.
// A nil reg is treated as an empty registry.
func NewSignature(reg *Registry, opts ...SignatureFunc) *Signature {
	if reg == nil {
		reg = NewRegistry()
	}

	s := &Signature{
		OptionsPosition: -1,
		options:         reg,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithName sets the command name.
func WithName(name string) SignatureFunc {
	return func(s *Signature) { s.Name = name }
}

// WithSummary sets the command description.
func WithSummary(help string) SignatureFunc {
	return func(s *Signature) { s.Help = help }
}

// WithArguments appends positional parameters.
func WithArguments(args ...Argument) SignatureFunc {
	return func(s *Signature) { s.Arguments = append(s.Arguments, args...) }
}

// WithOptionsParameter sets the position and type name of the options
// parameter.
func WithOptionsParameter(pos int, typ string) SignatureFunc {
	return func(s *Signature) {
		s.OptionsPosition = pos
		s.OptionsType = typ
	}
}

// WithLogger sets the logger that receives trace records during parsing.
func WithLogger(logger log.Logger) SignatureFunc {
	return func(s *Signature) { s.logger = logger }
}

// Options returns the registry of recognized options.
func (s *Signature) Options() *Registry { return s.options }

// HasOptions reports whether the signature recognizes any option.
func (s *Signature) HasOptions() bool { return s.options.Len() > 0 }

// ParseOptions parses tokens against the signature's options. See [Parse].
func (s *Signature) ParseOptions(tokens []string) ([]string, error) {
	args, err := parse(tokens, s.options, s.logger)
	if err != nil {
		s.logger.Debug("parse failed",
			slog.String("signature", s.Name),
			slog.Any("error", err),
		)

		return nil, err
	}

	return args, nil
}

// ParseString splits line into tokens the way a POSIX shell would (quotes,
// escapes, comments) and parses them with [Signature.ParseOptions].
func (s *Signature) ParseString(line string) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, ErrSplit.Wrap(err).With(slog.String("line", line))
	}

	return s.ParseOptions(tokens)
}

// Reset discards the recorded values of every option.
func (s *Signature) Reset() { s.options.Reset() }

// LogValue implements slog.LogValuer.
func (s *Signature) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name),
		slog.Int("options", s.options.Len()),
		slog.Int("arguments", len(s.Arguments)),
	)
}
