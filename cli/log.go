package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/shopt/getopt"
	"github.com/ardnew/shopt/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"json"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"rfc3339"                         help:"Set timestamp format ('none' omits it)."`
	Caller     bool      `default:"false"                           help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                            help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// logFlags is the signature of the logger flags as they appear on the
// command line, for the early scan.
func logFlags() *getopt.Signature {
	required := getopt.WithMode(getopt.ModeRequired)
	optional := getopt.WithMode(getopt.ModeOptional)

	return getopt.NewSignature(getopt.NewRegistry(
		getopt.NewOption("log-level", required),
		getopt.NewOption("log-format", required),
		getopt.NewOption("log-time-layout", required),
		getopt.NewOption("log-caller", optional),
		getopt.NewOption("no-log-caller", optional),
		getopt.NewOption("log-pretty", optional),
		getopt.NewOption("no-log-pretty", optional),
	))
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing.
//
// Only known "--log-*" and "--no-log-*" flags are considered, each with
// the token following it when it takes a separate value. Scanning stops at
// "--" since what follows belongs to a command.
func (f *logConfig) scan(args []string) {
	sig := logFlags()

	var tokens []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		if !strings.HasPrefix(arg, "--log-") && !strings.HasPrefix(arg, "--no-log-") {
			continue
		}

		name, _, inline := strings.Cut(arg[2:], "=")

		opt, ok := sig.Options().Lookup(name)
		if !ok {
			// kong reports unknown flags once it parses.
			log.Debug("log flag scan skipped unknown flag", slog.String("flag", arg))

			continue
		}

		tokens = append(tokens, arg)

		if !inline && opt.Mode() == getopt.ModeRequired && i+1 < len(args) {
			i++
			tokens = append(tokens, args[i])
		}
	}

	// Options recorded before a failing token keep their values.
	if _, err := sig.ParseOptions(tokens); err != nil {
		log.Debug("log flag scan incomplete", slog.Any("error", err))
	}

	for opt := range sig.Options().Options() {
		if !opt.IsSet() {
			continue
		}

		f.apply(opt.Key(), opt.Value())
	}
}

// apply sets the logger field with the given scan key to value.
func (f *logConfig) apply(key string, value any) {
	text, _ := value.(string)

	switch key {
	case "log_level":
		_ = f.Level.UnmarshalText([]byte(text))

	case "log_format":
		_ = f.Format.UnmarshalText([]byte(text))

	case "log_time_layout":
		f.TimeLayout = text
		log.Config(log.WithTimeLayout(text))

	case "log_caller", "no_log_caller":
		if v, ok := flagBool(value); ok {
			f.Caller = v == (key == "log_caller")
			log.Config(log.WithCaller(f.Caller))
		}

	case "log_pretty", "no_log_pretty":
		if v, ok := flagBool(value); ok {
			f.Pretty = v == (key == "log_pretty")
			log.Config(log.WithPretty(f.Pretty))
		}
	}
}

// flagBool interprets the value of a boolean flag: true when given without
// an argument, otherwise its parsed argument.
func flagBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)

		return b, err == nil
	default:
		return false, false
	}
}
