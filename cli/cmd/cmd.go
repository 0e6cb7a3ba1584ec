package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/shopt/getopt"
	"github.com/ardnew/shopt/log"
	"github.com/ardnew/shopt/schema"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type streamsKey struct{}

// Streams are the standard streams used by a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a new context.Context whose commands read and write
// the given streams instead of the process's standard streams.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source selects the signature document a command operates on.
type Source struct {
	Signature string `help:"Signature document, or '-' for stdin" placeholder:"PATH" required:"" short:"s"`
}

// document loads and decodes the signature document.
func (s Source) document(ctx context.Context) (*schema.Document, error) {
	var (
		doc *schema.Document
		err error
	)

	if s.Signature == stdinSource {
		doc, err = schema.Load(streamsFrom(ctx).In)
	} else {
		doc, err = schema.LoadFile(s.Signature)
	}

	if err != nil {
		return nil, ErrSignature.Wrap(err).With(slog.String("path", s.Signature))
	}

	log.TraceContext(ctx, "signature document loaded",
		slog.String("path", s.Signature),
		slog.String("name", doc.Name),
		slog.Int("options", len(doc.Options)),
	)

	return doc, nil
}

// signature loads the signature document and builds its signature with the
// default logger attached.
func (s Source) signature(ctx context.Context) (*getopt.Signature, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}

	sig, err := doc.Signature(getopt.WithLogger(log.Default()))
	if err != nil {
		return nil, ErrSignature.Wrap(err).With(slog.String("path", s.Signature))
	}

	return sig, nil
}
