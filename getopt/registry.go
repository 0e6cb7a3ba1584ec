package getopt

import (
	"iter"
	"slices"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the number of flags suggested for an undefined flag.
const maxSuggestions = 3

// Registry maps every alias of a set of options to the [Option] that owns
// it. A Registry is built before parsing and is not modified by the parser
// except through the Options it references.
type Registry struct {
	index map[string]*Option
	order []*Option
}

// NewRegistry returns a Registry indexing every alias of opts.
func NewRegistry(opts ...*Option) *Registry {
	r := &Registry{index: make(map[string]*Option)}

	for _, opt := range opts {
		r.Add(opt)
	}

	return r
}

// Add indexes every alias of opt. Registering an alias already present
// replaces the previous owner; callers are expected to avoid duplicates.
func (r *Registry) Add(opt *Option) {
	if opt == nil {
		return
	}

	if r.index == nil {
		r.index = make(map[string]*Option)
	}

	for _, name := range opt.names {
		r.index[name] = opt
	}

	if !slices.Contains(r.order, opt) {
		r.order = append(r.order, opt)
	}
}

// Lookup returns the Option registered under the dash-less alias name.
func (r *Registry) Lookup(name string) (*Option, bool) {
	if r == nil {
		return nil, false
	}

	opt, ok := r.index[name]

	return opt, ok
}

// Len returns the number of distinct options.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.order)
}

// Options returns an iterator over the distinct options in the order they
// were added.
func (r *Registry) Options() iter.Seq[*Option] {
	return func(yield func(*Option) bool) {
		if r == nil {
			return
		}

		for _, opt := range r.order {
			if !yield(opt) {
				return
			}
		}
	}
}

// Names returns an iterator over every alias currently owned by an option,
// grouped by option in the order they were added.
func (r *Registry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for opt := range r.Options() {
			for _, name := range opt.names {
				if r.index[name] != opt {
					continue // shadowed by a later registration
				}

				if !yield(name) {
					return
				}
			}
		}
	}
}

// Flags returns every alias in dash form, in the order of [Registry.Names].
func (r *Registry) Flags() []string {
	var flags []string

	for name := range r.Names() {
		flags = append(flags, Flag(name))
	}

	return flags
}

// Reset discards the recorded values of every option.
func (r *Registry) Reset() {
	for opt := range r.Options() {
		opt.Reset()
	}
}

// suggest returns the registered flags that fuzzy-match flag, best first.
func (r *Registry) suggest(flag string) []string {
	matches := fuzzy.Find(flag, r.Flags())
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	if len(matches) == 0 {
		return nil
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}

	return out
}
