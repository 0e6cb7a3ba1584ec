// Package query evaluates expr-lang expressions over parse results, e.g.
//
//	has("verbose") && len(arguments) > 0
//	options.output ?? "a.out"
//	mung.prefix(options.path, "/usr/local/bin")
//
// See [Compile] for the names available to a query.
package query
