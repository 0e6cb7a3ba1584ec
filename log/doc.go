// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is built with [Make] and functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("ms"),
//		log.WithCaller(true))
//
//	logger.Info("signature loaded", slog.String("path", path))
//
// Attributes are always [slog.Attr] values. Errors are logged with
// slog.Any("error", err); errors implementing [slog.LogValuer] expand into
// their structured form.
//
// # Levels
//
// Besides the four [slog] levels the package defines [LevelTrace], below
// [LevelDebug], which the option parser uses to report every token it
// consumes.
//
// # Pretty output
//
// With [WithPretty] (the default), records are colorized with lipgloss when
// the output is a terminal, and JSON records are indented. Plain writers
// receive the same layout without escape sequences.
//
// # Package logger
//
// The package-level functions ([Info], [ErrorContext], ...) write through a
// process-wide logger that writes to standard error until reconfigured with
// [Config]. Context-free calls use the context returned by
// [DefaultContextProvider].
//
// The zero [Logger] is valid and silent.
package log
