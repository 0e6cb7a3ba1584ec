//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/shopt/log"
	"github.com/ardnew/shopt/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling (${pprofModeEnum})." placeholder:"MODE"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory."                               type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(cacheDir(), "pprof"),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start profiles the selected command if a mode is configured. Each
// command writes to its own subdirectory of Dir.
func (f pprofConfig) start(ctx context.Context, command string) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	dir := f.Dir
	if name, _, _ := strings.Cut(command, " "); name != "" {
		dir = filepath.Join(dir, name)
	}

	attrs := []slog.Attr{
		slog.String("mode", f.Mode),
		slog.String("dir", dir),
		slog.String("command", command),
	}

	log.DebugContext(ctx, "pprof start", attrs...)

	profiler := profile.Start(
		profile.WithMode(f.Mode),
		profile.WithPath(dir),
		profile.WithQuiet(true),
	)

	return func() {
		profiler.Stop()
		log.DebugContext(ctx, "pprof stop", attrs...)
	}
}
