package repl

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/shopt/getopt"
	"github.com/ardnew/shopt/log"
	"github.com/ardnew/shopt/query"
	"github.com/ardnew/shopt/report"
)

// queryPrefix marks an input line as a query against the last result.
const queryPrefix = "?"

// session holds the state shared by every line entered in one REPL.
type session struct {
	sig    *getopt.Signature
	last   *report.Result
	logger log.Logger
}

func newSession(sig *getopt.Signature, logger log.Logger) *session {
	return &session{sig: sig, logger: logger}
}

// exec runs one line of parse input and returns the text to print.
// Lines beginning with "?" are queries against the last successful parse.
func (s *session) exec(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)

	if source, ok := strings.CutPrefix(line, queryPrefix); ok {
		return s.query(ctx, strings.TrimSpace(source))
	}

	return s.parse(ctx, line)
}

// parse parses line against a freshly reset signature.
func (s *session) parse(ctx context.Context, line string) (string, error) {
	s.sig.Reset()

	args, err := s.sig.ParseString(line)
	if err != nil {
		s.logger.DebugContext(ctx, "repl parse failed", slog.Any("error", err))

		return "", err
	}

	result := report.From(s.sig, args)
	s.last = &result

	var buf bytes.Buffer
	if err := result.Write(ctx, &buf, report.FormatText, 0); err != nil {
		return "", err
	}

	if buf.Len() == 0 {
		return "(empty)", nil
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (s *session) query(ctx context.Context, source string) (string, error) {
	if s.last == nil {
		return "", ErrNoResult
	}

	value, err := query.Eval(source, *s.last)
	if err != nil {
		return "", err
	}

	s.logger.TraceContext(ctx, "repl query",
		slog.String("source", source),
		slog.String("type", typeName(value)),
	)

	return formatValue(ctx, value)
}

// reset forgets the last result and clears all option values.
func (s *session) reset() {
	s.sig.Reset()
	s.last = nil
}

// formatValue renders a query result on one line: strings verbatim,
// everything else as flow-style YAML.
func formatValue(ctx context.Context, v any) (string, error) {
	var buf bytes.Buffer

	if err := report.WriteValue(ctx, &buf, v, report.FormatText, 0); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
