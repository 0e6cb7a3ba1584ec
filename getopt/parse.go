package getopt

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/shopt/log"
)

// terminator ends option parsing; every token after it is positional.
const terminator = "--"

// Kind classifies a raw command-line token.
type Kind int

const (
	KindPositional Kind = iota // positional
	KindLong                   // long
	KindCluster                // cluster
	KindTerminator             // terminator
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLong:
		return "long"
	case KindCluster:
		return "cluster"
	case KindTerminator:
		return "terminator"
	default:
		return "positional"
	}
}

// Classify reports how the parser treats tok when scanning for options:
//
//	"--"             terminator
//	"--name[=value]" long option
//	"-abc"           cluster of short options a, b, c
//	anything else    positional argument (including "-" and "")
func Classify(tok string) Kind {
	switch {
	case tok == terminator:
		return KindTerminator
	case len(tok) > len(longPrefix) && strings.HasPrefix(tok, longPrefix):
		return KindLong
	case len(tok) > len(shortPrefix) && strings.HasPrefix(tok, shortPrefix):
		return KindCluster
	default:
		return KindPositional
	}
}

// Parse scans tokens left to right, recording every option occurrence on the
// matching [Option] in reg, and returns the remaining positional arguments
// in their original order.
//
// The first malformed or undefined flag aborts the parse with a
// [*FlagError]; options recorded before the failure keep their values.
func Parse(tokens []string, reg *Registry) ([]string, error) {
	return parse(tokens, reg, log.Logger{})
}

func parse(tokens []string, reg *Registry, logger log.Logger) ([]string, error) {
	p := parser{
		tokens: tokens,
		reg:    reg,
		logger: logger,
		args:   make([]string, 0, len(tokens)),
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	return p.args, nil
}

// parser holds the state of one parse: a cursor into tokens and the
// positional arguments collected so far.
type parser struct {
	tokens []string
	cursor int
	reg    *Registry
	logger log.Logger
	args   []string
}

// peek returns the next unread token without consuming it.
func (p *parser) peek() (string, bool) {
	if p.cursor >= len(p.tokens) {
		return "", false
	}

	return p.tokens[p.cursor], true
}

// next consumes and returns the next unread token.
func (p *parser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.cursor++
	}

	return tok, ok
}

func (p *parser) run() error {
	for {
		tok, ok := p.next()
		if !ok {
			return nil
		}

		switch Classify(tok) {
		case KindTerminator:
			rest := p.tokens[p.cursor:]
			p.args = append(p.args, rest...)
			p.cursor = len(p.tokens)

			p.logger.Trace("terminator", slog.Int("passthrough", len(rest)))

			return nil

		case KindLong:
			if err := p.long(tok); err != nil {
				return err
			}

		case KindCluster:
			if err := p.cluster(tok); err != nil {
				return err
			}

		default:
			p.args = append(p.args, tok)
		}
	}
}

// long handles "--name" and "--name=value".
func (p *parser) long(tok string) error {
	name, value, inline := strings.Cut(tok[len(longPrefix):], "=")
	flag := longPrefix + name

	opt, ok := p.reg.Lookup(name)
	if !ok {
		return p.undefined(flag)
	}

	switch opt.mode {
	case ModeRequired:
		if inline {
			p.record(opt, flag, value)

			return nil
		}

		v, ok := p.next()
		if !ok {
			return newFlagError(ErrArgumentRequired, flag)
		}

		p.record(opt, flag, v)

	case ModeOptional:
		if inline {
			p.record(opt, flag, value)

			return nil
		}

		p.record(opt, flag, p.optional())

	default:
		if inline {
			return newFlagError(ErrArgumentRejected, flag)
		}

		p.record(opt, flag, true)
	}

	return nil
}

// cluster handles "-abc". Only the last option of a cluster may take its
// value from the following token; the cluster's own characters are never
// used as a value.
func (p *parser) cluster(tok string) error {
	chars := tok[len(shortPrefix):]

	for i := 0; i < len(chars); {
		_, size := utf8.DecodeRuneInString(chars[i:])
		name := chars[i : i+size]
		flag := shortPrefix + name

		i += size
		last := i == len(chars)

		opt, ok := p.reg.Lookup(name)
		if !ok {
			return p.undefined(flag)
		}

		switch opt.mode {
		case ModeRequired:
			if !last {
				return newFlagError(ErrArgumentRequired, flag)
			}

			v, ok := p.next()
			if !ok {
				return newFlagError(ErrArgumentRequired, flag)
			}

			p.record(opt, flag, v)

		case ModeOptional:
			if !last {
				p.record(opt, flag, true)

				continue
			}

			p.record(opt, flag, p.optional())

		default:
			p.record(opt, flag, true)
		}
	}

	return nil
}

// optional consumes the next token as a value unless it is missing or looks
// like a flag, in which case the occurrence is valueless.
func (p *parser) optional() any {
	tok, ok := p.peek()
	if !ok || strings.HasPrefix(tok, shortPrefix) {
		return true
	}

	p.cursor++

	return tok
}

func (p *parser) record(opt *Option, flag string, v any) {
	opt.record(v)

	p.logger.Trace("option",
		slog.String("flag", flag),
		slog.String("kind", Classify(flag).String()),
		slog.String("key", opt.key),
		slog.Any("value", v),
	)
}

func (p *parser) undefined(flag string) error {
	err := newFlagError(ErrOptionNotDefined, flag)
	err.suggest = p.reg.suggest(flag)

	return err
}
