package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"info", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"info+2", LevelInfo + 2},
		{"verbose", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelError, "error"},
		{LevelInfo + 2, "info+2"},
		{LevelTrace + 1, "trace+1"},
		{LevelTrace - 2, "trace-2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLevels_RoundTrip(t *testing.T) {
	names := slices.Collect(Levels())

	if want := []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	for _, name := range names {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("%q parsed back as %q", name, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"logfmt", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_UnmarshalText(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("warn")); err != nil || l != LevelWarn {
		t.Errorf("expected warn, got %v (err %v)", l, err)
	}

	var f Format
	if err := f.UnmarshalText([]byte("text")); err != nil || f != FormatText {
		t.Errorf("expected text, got %v (err %v)", f, err)
	}
}

func TestConfig_Options(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelDebug),
		WithFormat(FormatText),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelDebug || c.format != FormatText || !c.caller || c.pretty {
		t.Errorf("options not applied: %+v", c)
	}

	if c.mutex == nil {
		t.Error("expected options to allocate a mutex")
	}

	if c.output != nil {
		t.Error("expected output untouched")
	}

	if c = apply(c, WithOutput(nil)); c.output == nil {
		t.Error("expected nil output replaced with a discarding writer")
	}
}

func TestConfig_Clone_DetachesMutex(t *testing.T) {
	c := makeConfig(nil)
	d := c.clone(WithLevel(LevelError))

	if c.mutex == d.mutex {
		t.Error("clone shares the mutex")
	}

	if c.level != DefaultLevel || d.level != LevelError {
		t.Errorf("unexpected levels %v, %v", c.level, d.level)
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", "2023-10-15T14:30:45Z"},
		{"rfc3339 nano", "rfc-3339-nano", "2023-10-15T14:30:45.123456789Z"},
		{"kitchen", "Kitchen", "2:30PM"},
		{"ms", "ms", "Oct 15 14:30:45.123"},
		{"custom", "2006/01/02", "2023/10/15"},
		{"blank", "   ", ""},
		{"none", "none", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(now); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
