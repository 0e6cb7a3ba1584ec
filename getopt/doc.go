// Package getopt partitions command-line tokens into option occurrences and
// positional arguments.
//
// An [Option] is declared with its aliases, e.g. "f,foo" or "-f, --foo",
// an argument [Mode], and whether repeated occurrences accumulate. A
// [Registry] maps every alias to its Option, and [Parse] walks the tokens
// once, left to right:
//
//	--name, --name=value   long option
//	-abc                   short options a, b and c
//	--                     end of options; the rest is positional
//	anything else          positional, including "-" and ""
//
// A [ModeRequired] option takes its value inline ("--name=value") or from
// the next token, whatever that token is. A [ModeOptional] option takes the
// next token only when it does not begin with "-"; otherwise the
// occurrence is recorded as true. Within a cluster, only the last option may
// take a value from the next token, and a required option anywhere else in
// the cluster is an error.
//
// Parsing stops at the first problem with a [*FlagError] that names the flag
// exactly as typed and matches one of [ErrOptionNotDefined],
// [ErrArgumentRejected] or [ErrArgumentRequired] under [errors.Is].
//
// A [Signature] pairs a Registry with the description of a command's
// positional parameters and can split shell-style command lines with
// [Signature.ParseString].
//
// Options are mutated by parsing. Registries and Signatures must not be
// parsed from more than one goroutine at a time; call Reset between parses
// to discard previous values.
package getopt
