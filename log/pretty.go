package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used to colorize records. Styles are bound to a
// renderer for the handler's output, so writers that are not terminals
// receive plain text.
type palette struct {
	key, str, num, bad, good, time lipgloss.Style
	level                          map[slog.Level]lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		bad:  fg("1"),
		good: fg("2"),
		time: fg("4"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("5"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2").Bold(true),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	for _, at := range []slog.Level{
		slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug,
	} {
		if l >= at {
			return p.level[at]
		}
	}

	return p.level[slog.Level(LevelTrace)]
}

// prettyHandler is a [slog.Handler] for humans. In text mode each record is
// one line of space-separated key=value pairs; in JSON mode each record is
// an indented object. Attributes added with WithAttrs and WithGroup are
// kept, with group names joined to keys by ".".
type prettyHandler struct {
	opts       *slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	pal        palette
	json       bool
	prefix     string
	attrs      []slog.Attr
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	formatTime FormatTime,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:       opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
		pal:        makePalette(w),
		json:       format == FormatJSON,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = slices.Clip(h.attrs)

	for _, a := range attrs {
		c.attrs = flatten(c.attrs, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			fields = append(fields, slog.String(slog.TimeKey, s))
		}
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.prefix, a)

		return true
	})

	var buf bytes.Buffer

	if h.json {
		h.writeJSON(&buf, fields)
	} else {
		h.writeText(&buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// flatten appends a to fields, expanding group values into dotted keys.
func flatten(fields []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		if a.Equal(slog.Attr{}) {
			return fields
		}

		return append(fields, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}

	if a.Key != "" {
		prefix += a.Key + "."
	}

	for _, g := range a.Value.Group() {
		fields = flatten(fields, prefix, g)
	}

	return fields
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, fields []slog.Attr) {
	for i, a := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.value(a.Value, false))
	}
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, fields []slog.Attr) {
	buf.WriteString("{")

	for i, a := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
		buf.WriteString(h.pal.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")
		buf.WriteString(h.value(a.Value, true))
	}

	buf.WriteString("\n}")
}

// value renders v, quoting strings only when quote is set.
func (h *prettyHandler) value(v slog.Value, quote bool) string {
	q := func(s string) string {
		if quote {
			return strconv.Quote(s)
		}

		return s
	}

	switch v.Kind() {
	case slog.KindString:
		return h.pal.str.Render(q(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.pal.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.pal.good.Render("true")
		}

		return h.pal.bad.Render("false")

	case slog.KindDuration:
		return h.pal.num.Render(q(v.Duration().String()))

	case slog.KindTime:
		return h.pal.time.Render(q(v.Time().Format(DefaultTimeLayout)))

	case slog.KindAny:
		switch x := v.Any().(type) {
		case slog.Level:
			return h.pal.levelStyle(x).Render(q(strings.ToUpper(Level(x).String())))
		case error:
			return h.pal.bad.Render(q(x.Error()))
		case nil:
			return h.pal.key.Render("null")
		}

		if quote {
			if b, err := json.Marshal(v.Any()); err == nil {
				return h.pal.str.Render(string(b))
			}
		}
	}

	return h.pal.str.Render(q(v.String()))
}
