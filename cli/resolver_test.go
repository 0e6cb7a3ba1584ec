package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}

	return val
}

func TestResolve(t *testing.T) {
	resolver, err := resolve(strings.NewReader(`
log-format: text
log_caller: true
log:
  level: debug
pprof:
  mode: cpu
indent: 4
ratio: 0.5
tags: [a, 2]
`))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-format", "text"},
		{"log-caller", true},
		{"log-level", "debug"},
		{"pprof-mode", "cpu"},
		{"indent", "4"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		if got := resolveFlag(t, resolver, tt.flag); got != tt.want {
			t.Errorf("%s: expected %#v, got %#v", tt.flag, tt.want, got)
		}
	}

	tags, ok := resolveFlag(t, resolver, "tags").([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" || tags[1] != "2" {
		t.Errorf("unexpected tags %#v", tags)
	}

	if err := resolver.Validate(nil); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestResolve_EmptyOrInvalid(t *testing.T) {
	for _, in := range []string{"", "log-level: [\n", "- a\n- b\n"} {
		resolver, err := resolve(strings.NewReader(in))
		if err != nil {
			t.Fatalf("resolve(%q): %v", in, err)
		}

		if got := resolveFlag(t, resolver, "log-level"); got != nil {
			t.Errorf("resolve(%q): expected no value, got %v", in, got)
		}
	}
}
