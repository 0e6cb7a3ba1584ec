package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// HistoryEntry is one submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// String returns the entry as stored on disk: a mode prefix and the line.
func (e HistoryEntry) String() string { return e.Mode.prefix() + e.Line }

func parseEntry(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, modeCtrl.prefix()); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	// Unprefixed lines are parse input.
	s, _ := strings.CutPrefix(line, modeParse.prefix())

	return HistoryEntry{Line: s, Mode: modeParse}
}

// History is the REPL input history, persisted one entry per line.
// An empty path keeps the history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns a History backed by the file at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those read from the history file.
// A missing file is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, parseEntry(line))
		}
	}

	return scanner.Err()
}

// Add appends line in the given mode. A repeat of the most recent entry is
// dropped; an older duplicate moves to the end.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	entry := HistoryEntry{Line: line, Mode: mode}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	for i, e := range h.entries {
		if e == entry {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			h.entries = append(h.entries, entry)

			return h.rewrite()
		}
	}

	h.entries = append(h.entries, entry)

	return h.append(entry)
}

// Entry returns the entry at index i; index 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return append([]HistoryEntry(nil), h.entries...)
}

// append writes entry to the end of the file. Must be called with h.mu held.
func (h *History) append(entry HistoryEntry) error {
	return h.write(os.O_APPEND, entry)
}

// rewrite replaces the file with all entries. Must be called with h.mu held.
func (h *History) rewrite() error {
	return h.write(os.O_TRUNC, h.entries...)
}

func (h *History) write(flag int, entries ...HistoryEntry) error {
	if h.path == "" {
		return nil
	}

	file, err := os.OpenFile(h.path, flag|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	for _, e := range entries {
		_, _ = w.WriteString(e.String() + "\n")
	}

	if err := w.Flush(); err != nil {
		_ = file.Close()

		return err
	}

	return file.Close()
}
