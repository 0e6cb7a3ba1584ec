package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/shopt/getopt"
)

// hint is the call signature shown while the cursor is inside a function's
// parameter list.
type hint struct {
	signature string
	params    []string
}

// exprHints are the expr-lang builtins offered in queries.
var exprHints = map[string]hint{
	"len":       {"len(v)", []string{"v"}},
	"all":       {"all(array, predicate)", []string{"array", "predicate"}},
	"any":       {"any(array, predicate)", []string{"array", "predicate"}},
	"none":      {"none(array, predicate)", []string{"array", "predicate"}},
	"map":       {"map(array, mapper)", []string{"array", "mapper"}},
	"filter":    {"filter(array, predicate)", []string{"array", "predicate"}},
	"count":     {"count(array, predicate)", []string{"array", "predicate"}},
	"first":     {"first(array)", []string{"array"}},
	"last":      {"last(array)", []string{"array"}},
	"keys":      {"keys(map)", []string{"map"}},
	"values":    {"values(map)", []string{"map"}},
	"join":      {"join(array, separator)", []string{"array", "separator"}},
	"split":     {"split(string, separator)", []string{"string", "separator"}},
	"trim":      {"trim(string)", []string{"string"}},
	"upper":     {"upper(string)", []string{"string"}},
	"lower":     {"lower(string)", []string{"string"}},
	"hasPrefix": {"hasPrefix(string, prefix)", []string{"string", "prefix"}},
	"hasSuffix": {"hasSuffix(string, suffix)", []string{"string", "suffix"}},
	"int":       {"int(v)", []string{"v"}},
	"string":    {"string(v)", []string{"v"}},
	"type":      {"type(v)", []string{"v"}},
}

// queryHints are the functions of the query environment.
var queryHints = map[string]hint{
	"has":           {"has(name)", []string{"name"}},
	"mung.prefix":   {"mung.prefix(list, ...items)", []string{"list", "...items"}},
	"mung.prefixif": {"mung.prefixif(list, keep, ...items)", []string{"list", "keep", "...items"}},
}

func lookupHint(name string) (hint, bool) {
	if h, ok := queryHints[name]; ok {
		return h, true
	}

	h, ok := exprHints[name]

	return h, ok
}

func exprBuiltinNames() []string {
	return slices.Sorted(maps.Keys(exprHints))
}

// Hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall is a function call enclosing the cursor.
type functionCall struct {
	name     string // qualified name, e.g. "mung.prefix"
	argIndex int    // 0-based index of the argument under the cursor
	inCall   bool   // whether the cursor is inside a parameter list
}

// detectFunctionCall finds the innermost call whose parameter list encloses
// cursor.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	open := -1
	depth := 0

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '.' && r != '_' && !isIdentRune(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

func isIdentRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// renderSignatureHint renders h with the parameter at argIndex highlighted.
// A variadic parameter stays highlighted for every later argument.
func renderSignatureHint(name string, h hint, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range h.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")
		if argIndex == i || variadic && argIndex > i {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}

// usageParams returns the positional parameters of sig as shown in a usage
// line: <name> when required, [name] when optional, with a trailing "..."
// when variadic.
func usageParams(sig *getopt.Signature) []string {
	params := make([]string, len(sig.Arguments))

	for i, arg := range sig.Arguments {
		p := "<" + arg.Name + ">"
		if arg.Optional {
			p = "[" + arg.Name + "]"
		}

		if arg.Variadic {
			p += "..."
		}

		params[i] = p
	}

	return params
}

// renderUsageHint renders the usage line of sig with the positional
// parameter at argIndex highlighted.
func renderUsageHint(sig *getopt.Signature, argIndex int) string {
	params := usageParams(sig)
	if len(params) == 0 {
		return ""
	}

	name := sig.Name
	if name == "" {
		name = "usage:"
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))

	if sig.HasOptions() {
		b.WriteString(signatureStyle.Render(" [options]"))
	}

	last := len(params) - 1

	for i, p := range params {
		b.WriteString(" ")

		if argIndex == i || i == last && sig.Arguments[i].Variadic && argIndex > i {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	return b.String()
}

// argIndex returns the index of the positional argument being typed at the
// end of line, skipping option flags and the values they consume.
func argIndex(reg *getopt.Registry, line string) int {
	tokens := strings.Fields(line)

	// The token under the cursor has not been completed yet.
	if len(tokens) > 0 && !strings.HasSuffix(line, " ") {
		tokens = tokens[:len(tokens)-1]
	}

	n := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch getopt.Classify(tok) {
		case getopt.KindTerminator:
			return n + len(tokens) - i - 1

		case getopt.KindPositional:
			n++

		case getopt.KindLong:
			name, _, inline := strings.Cut(tok[2:], "=")
			if opt, ok := reg.Lookup(name); ok && !inline && takesNext(opt, tokens, i) {
				i++
			}

		case getopt.KindCluster:
			r, _ := utf8.DecodeLastRuneInString(tok)
			if opt, ok := reg.Lookup(string(r)); ok && takesNext(opt, tokens, i) {
				i++
			}
		}
	}

	return n
}

// takesNext reports whether opt, occurring at tokens[i], consumes the token
// after it.
func takesNext(opt *getopt.Option, tokens []string, i int) bool {
	if i+1 >= len(tokens) {
		return false
	}

	switch opt.Mode() {
	case getopt.ModeRequired:
		return true
	case getopt.ModeOptional:
		return !strings.HasPrefix(tokens[i+1], "-")
	default:
		return false
	}
}
