package log

import (
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log record. It extends [slog.Level] with
// [LevelTrace], used for per-token parser diagnostics.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4) // trace
	LevelDebug = Level(slog.LevelDebug)     // debug
	LevelInfo  = Level(slog.LevelInfo)      // info
	LevelWarn  = Level(slog.LevelWarn)      // warn
	LevelError = Level(slog.LevelError)     // error
)

// DefaultLevel is the minimum level of a new [Logger].
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// String returns the lowercase level name. Levels between the named ones are
// rendered relative to the nearest lower name, e.g. "info+2".
func (l Level) String() string {
	if l == LevelTrace {
		return "trace"
	}

	if l < LevelDebug {
		return "trace" + signed(int(l-LevelTrace))
	}

	return strings.ToLower(slog.Level(l).String())
}

func signed(n int) string {
	if n < 0 {
		return strconv.Itoa(n)
	}

	return "+" + strconv.Itoa(n)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names select
// [DefaultLevel].
func (l *Level) UnmarshalText(text []byte) error {
	*l = ParseLevel(string(text))

	return nil
}

// Levels returns an iterator over the names of all defined levels, most
// verbose first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range levels {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a level name, case-insensitively. Besides "trace", it
// accepts everything [slog.Level.UnmarshalText] does, such as "warn" or
// "info+2". Unrecognized input yields [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	if strings.EqualFold(s, "trace") {
		return LevelTrace
	}

	var sl slog.Level
	if err := sl.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(sl)
}

// Format selects the record encoding.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the record encoding of a new [Logger].
const DefaultFormat = FormatJSON

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "format(" + strconv.Itoa(int(f)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names select
// [DefaultFormat].
func (f *Format) UnmarshalText(text []byte) error {
	*f = ParseFormat(string(text))

	return nil
}

// Formats returns an iterator over the names of all defined formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatJSON, FormatText} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a format name. Unrecognized input yields
// [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "logfmt":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return DefaultFormat
	}
}

// FormatTime renders a record timestamp. An empty result omits the time.
type FormatTime func(time.Time) string

const (
	// DefaultTimeLayout is used when no time layout is configured.
	DefaultTimeLayout = time.RFC3339
	// DefaultCaller controls whether records carry their source location.
	DefaultCaller = false
	// DefaultPretty controls whether records are colorized for terminals.
	DefaultPretty = true
)

// config is the state shared by a [Logger] and the handler built from it.
// The mutex pointer is replaced on every clone so that derived loggers
// never contend with their parent.
type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	c := config{mutex: &sync.RWMutex{}}

	return apply(apply(c, WithDefaults(w)), opts...)
}

func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return apply(c, opts...)
}

// handlerOptions returns the [slog.HandlerOptions] shared by every handler:
// timestamps use formatTime and levels are printed by their [Level] names.
func (c config) handlerOptions() *slog.HandlerOptions {
	formatTime := c.formatTime

	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}

			switch a.Key {
			case slog.TimeKey:
				t, ok := a.Value.Any().(time.Time)
				if !ok {
					return a
				}

				s := formatTime(t)
				if s == "" {
					return slog.Attr{}
				}

				return slog.String(a.Key, s)

			case slog.LevelKey:
				if l, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(a.Key, strings.ToUpper(Level(l).String()))
				}
			}

			return a
		},
	}
}

func (c config) handler() slog.Handler {
	opts := c.handlerOptions()

	switch {
	case c.format != FormatText && c.format != FormatJSON:
		return slog.DiscardHandler
	case c.pretty:
		return newPrettyHandler(c.output, c.format, c.formatTime, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	default:
		return slog.NewTextHandler(c.output, opts)
	}
}

// set returns an [Option] that applies fn while holding the config lock.
func set(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()

		fn(&c)

		return c
	}
}

// WithDefaults resets every setting to its default and directs output to w
// ([io.Discard] if nil).
func WithDefaults(w io.Writer) Option {
	return set(func(c *config) {
		c.output = writer(w)
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput directs output to w ([io.Discard] if nil).
func WithOutput(w io.Writer) Option {
	return set(func(c *config) { c.output = writer(w) })
}

// WithLevel sets the minimum level of emitted records.
func WithLevel(level Level) Option {
	return set(func(c *config) { c.level = level })
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return set(func(c *config) { c.format = format })
}

// WithTimeLayout sets the timestamp layout. Named layouts from the [time]
// package are recognized case-insensitively ("RFC3339", "kitchen", "ms");
// any other string is used verbatim as a [time.Time.Format] layout. A blank
// layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	formatTime := makeFormatTimeFunc(layout)

	return set(func(c *config) { c.formatTime = formatTime })
}

// WithCaller sets whether records carry their source location.
func WithCaller(enable bool) Option {
	return set(func(c *config) { c.caller = enable })
}

// WithPretty sets whether records are colorized and, for JSON, indented.
// Colors are only emitted when the output is a terminal.
func WithPretty(enable bool) Option {
	return set(func(c *config) { c.pretty = enable })
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}

// timeLayout maps normalized layout names to [time] layouts.
var timeLayout = map[string]string{
	"none":        "",
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"rfc1123":     time.RFC1123,
	"rfc822":      time.RFC822,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"timeonly":    time.TimeOnly,
	"stamp":       time.Stamp,
	"ms":          time.StampMilli,
	"stampmilli":  time.StampMilli,
	"us":          time.StampMicro,
	"stampmicro":  time.StampMicro,
	"ns":          time.StampNano,
	"stampnano":   time.StampNano,
}

// normalizeLayout reduces a layout name to lowercase letters and digits so
// that "RFC-3339", "rfc3339" and "RFC 3339" compare equal.
func normalizeLayout(layout string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, strings.ToLower(layout))
}

func makeFormatTimeFunc(layout string) FormatTime {
	name := normalizeLayout(layout)
	if name == "" {
		return func(time.Time) string { return "" }
	}

	if std, ok := timeLayout[name]; ok {
		if std == "" {
			return func(time.Time) string { return "" }
		}

		layout = std
	}

	return func(t time.Time) string { return t.Format(layout) }
}
