package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/shopt/getopt"
	"github.com/ardnew/shopt/query"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "reset", "clear", "quit"}

// isExprBoundary reports whether r delimits a word in a query. Hyphens are
// not boundaries so that hyphenated aliases complete as one word.
func isExprBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']',
		'+', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';', '"', '\'':
		return true
	}

	return false
}

// wordBounds returns the word at cursor and its byte boundaries in input,
// where words are separated by runes for which boundary returns true.
// The word is empty when the cursor sits on a boundary.
func wordBounds(
	input string,
	cursor int,
	boundary func(rune) bool,
) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if boundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if boundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word at
// wordStart. For "has(x) && mung.pre" with the word "pre" it is "mung".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isExprBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.TrimSpace(prefix[pos:])
}

// isQuery reports whether input is a query line.
func isQuery(input string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(input, unicode.IsSpace), queryPrefix)
}

// queryCandidates returns completions for a word in a query whose
// member-access chain is parent.
func queryCandidates(sig *getopt.Signature, parent string) []string {
	switch parent {
	case "":
		return append(query.Names(), exprBuiltinNames()...)

	case "options":
		var keys []string
		for opt := range sig.Options().Options() {
			keys = append(keys, opt.Key())
		}

		return keys

	case "aliases":
		return slices.Collect(sig.Options().Names())

	default:
		return query.Members(parent)
	}
}

// computeMatches calculates the fuzzy matches for the word at the cursor,
// ranked best-first, along with the word boundaries.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := m.cursorOffset()

	var (
		word       string
		candidates []string
	)

	switch {
	case m.mode == modeCtrl:
		word, wordStart, wordEnd = wordBounds(input, cursor, unicode.IsSpace)
		candidates = ctrlCommands

	case isQuery(input):
		word, wordStart, wordEnd = wordBounds(input, cursor, isExprBoundary)
		parent := parentPath(input, wordStart)
		candidates = queryCandidates(m.session.sig, parent)

		// After a dot every member is offered so it can be browsed.
		if word == "" && parent != "" {
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}

	default:
		word, wordStart, wordEnd = wordBounds(input, cursor, unicode.IsSpace)

		// Only flags complete, and not once a value is attached.
		if !strings.HasPrefix(word, "-") || strings.Contains(word, "=") {
			return nil, wordStart, wordEnd
		}

		candidates = m.session.sig.Options().Flags()
	}

	if word == "" || len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// cursorOffset returns the byte offset in the input of the cursor, which
// the text input tracks in runes.
func (m model) cursorOffset() int {
	pos := m.input.Position()
	input := m.input.Value()

	for i := range input {
		if pos == 0 {
			return i
		}

		pos--
	}

	return len(input)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Query functions are displayed with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if _, ok := lookupHint(match.Str); ok {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
