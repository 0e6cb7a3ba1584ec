package repl

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_Persist(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"-v a", modeParse},
		{"list", modeCtrl},
		{"-v a", modeParse},
		{"?has(\"v\")", modeParse},
		{"?has(\"v\")", modeParse},
		{"  ", modeParse},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"-v a", modeParse},
		{"?has(\"v\")", modeParse},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "C:list\nP:-v a\nP:?has(\"v\")\n" {
		t.Errorf("unexpected file contents %q", data)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded entries = %v, want %v", got, want)
	}
}

func TestHistory_LoadUnprefixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("-x\n\nC:quit\nP:-y\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{"-x", modeParse}, {"quit", modeCtrl}, {"-y", modeParse}}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestHistory_Missing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "none", baseHistory))
	if err := h.Load(); err != nil {
		t.Errorf("expected missing file to load empty, got %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d", h.Len())
	}

	if _, err := h.Entry(0); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("-v", modeParse); err != nil {
		t.Fatal(err)
	}

	if e, err := h.Entry(0); err != nil || e.Line != "-v" {
		t.Errorf("unexpected entry %v, %v", e, err)
	}
}
