// Package cli contains the command line interface for shopt.
//
// # Usage
//
//	shopt parse -s build.yaml -- -vv --output=bin/app ./cmd
//	shopt parse -s build.yaml --format=json --query='has("verbose")' -- -v
//	shopt check -s build.yaml
//	shopt init build.yaml
//	shopt repl -s build.yaml
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the
// configuration directory (e.g. ~/.config/shopt). "shopt init --config"
// writes the current values as a starting point.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (rfc3339, ms, none, ...)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// Logger flags take effect before the rest of the command line is parsed.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o shopt .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/shopt/pprof)
package cli
