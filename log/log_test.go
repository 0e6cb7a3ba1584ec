package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected default format json, got %v", logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if !logger.pretty {
		t.Error("expected pretty enabled by default")
	}
}

func TestLogger_Zero_IsSilent(t *testing.T) {
	var logger Logger

	logger.Error("nothing happens")
	logger.TraceContext(context.Background(), "still nothing")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger reports enabled")
	}

	if logger.Level() != DefaultLevel {
		t.Errorf("expected %v, got %v", DefaultLevel, logger.Level())
	}

	if w := logger.With(slog.String("k", "v")); w.Logger != nil {
		t.Error("With on zero logger returned a live logger")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.minLevel))
			tt.logFunc(logger, "message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("expected logged=%v, got output %q", tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_Format_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false), WithLevel(LevelTrace))
	logger.Trace("token", slog.String("flag", "-x"), slog.Int("n", 2))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"level": "TRACE",
		"msg":   "token",
		"flag":  "-x",
		"n":     float64(2),
	}

	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s: expected %v, got %v", k, v, rec[k])
		}
	}
}

func TestLogger_Format_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
	logger.Info("loaded", slog.String("path", "sig.yaml"))

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=loaded", "path=sig.yaml"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected %q in %q", s, out)
		}
	}
}

func TestLogger_TimeLayout_None(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false), WithTimeLayout("none"))
	logger.Info("untimed")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no timestamp, got %q", buf.String())
	}
}

func TestLogger_Caller(t *testing.T) {
	for _, enable := range []bool{true, false} {
		var buf bytes.Buffer

		logger := Make(&buf, WithPretty(false), WithCaller(enable))
		logger.Info("where")

		if got := strings.Contains(buf.String(), "log_test.go"); got != enable {
			t.Errorf("caller=%v: source present=%v in %q", enable, got, buf.String())
		}
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithPretty(pretty)).
			With(slog.String("signature", "baz"))
		logger.Info("parsed")

		if !strings.Contains(buf.String(), "signature=baz") {
			t.Errorf("pretty=%v: expected attribute in %q", pretty, buf.String())
		}
	}
}

func TestLogger_Wrap_OverridesConfig(t *testing.T) {
	var a, b bytes.Buffer

	base := Make(&a, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&b), WithLevel(LevelDebug))

	wrapped.Debug("to b")
	base.Debug("dropped")

	if a.Len() != 0 {
		t.Errorf("base logger wrote %q", a.String())
	}

	if !strings.Contains(b.String(), "to b") {
		t.Errorf("wrapped logger did not write, got %q", b.String())
	}

	if base.Level() != LevelError {
		t.Errorf("Wrap modified the base level: %v", base.Level())
	}
}

func TestLogger_Pretty_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))
	logger.Warn("flag rejected",
		slog.String("flag", "--foo"),
		slog.Bool("inline", true),
		slog.Group("opt", slog.String("key", "foo")),
	)

	want := "level=WARN msg=flag rejected flag=--foo inline=true opt.key=foo\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLogger_Pretty_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Error("run failed", slog.Any("error", errors.New("boom")), slog.Int("code", 1))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("pretty JSON is not JSON %q: %v", buf.String(), err)
	}

	if rec["error"] != "boom" || rec["code"] != float64(1) || rec["level"] != "ERROR" {
		t.Errorf("unexpected record %v", rec)
	}

	if !strings.HasPrefix(buf.String(), "{\n  ") {
		t.Errorf("expected indented output, got %q", buf.String())
	}
}

func TestLogger_ConcurrentCalls(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Info("concurrent", slog.Int("id", i))
		}()
	}

	wg.Wait()

	if lines := strings.Count(buf.String(), "\n"); lines != 100 {
		t.Errorf("expected 100 records, got %d", lines)
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark", slog.Int("iteration", i))
	}
}
