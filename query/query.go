package query

import (
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/shopt/getopt"
	"github.com/ardnew/shopt/report"
)

var (
	ErrCompile  = getopt.NewError("compile query")
	ErrEvaluate = getopt.NewError("evaluate query")
)

// Program is a compiled query over a [report.Result].
type Program struct {
	source  string
	program *vm.Program
}

// Compile compiles source for evaluation against parse results.
//
// Queries see these names:
//
//	options    map of binding key to value
//	aliases    map of alias to value
//	arguments  positional arguments
//	has(name)  whether the option with key or alias name was set
//	mung.prefix(list, items...)            prepend items to a PATH-like list
//	mung.prefixif(list, pred, items...)    same, keeping entries matching pred
func Compile(source string) (*Program, error) {
	program, err := expr.Compile(source, expr.Env(env(report.Result{})))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("source", source))
	}

	return &Program{source: source, program: program}, nil
}

// Source returns the query text.
func (p *Program) Source() string { return p.source }

// Run evaluates the query against r.
func (p *Program) Run(r report.Result) (any, error) {
	out, err := vm.Run(p.program, env(r))
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("source", p.source))
	}

	return out, nil
}

// Eval compiles and runs source against r.
func Eval(source string, r report.Result) (any, error) {
	p, err := Compile(source)
	if err != nil {
		return nil, err
	}

	return p.Run(r)
}

// builtins holds the result-independent part of the environment.
var builtins = sync.OnceValue(func() map[string]any {
	return map[string]any{
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
})

// Names returns the sorted top-level names visible to a query.
func Names() []string {
	return slices.Sorted(maps.Keys(env(report.Result{})))
}

// Members returns the sorted member names of the builtin namespace name,
// or nil if name is not one.
func Members(name string) []string {
	ns, ok := builtins()[name].(map[string]any)
	if !ok {
		return nil
	}

	return slices.Sorted(maps.Keys(ns))
}

func env(r report.Result) map[string]any {
	e := maps.Clone(builtins())

	e["options"] = nonNil(r.Options)
	e["aliases"] = nonNil(r.Aliases)
	e["arguments"] = append([]string{}, r.Arguments...)
	e["has"] = r.Has

	return e
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}

	return m
}

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(list string, keep func(string) bool, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(keep),
	).String()
}
